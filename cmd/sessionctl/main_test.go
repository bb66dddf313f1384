package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const testSecret = "0123456789abcdef"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSignInspect_RoundTrip(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	for _, codec := range []string{"gob", "json"} {
		t.Run(codec, func(t *testing.T) {
			value, err := execute(t, "sign", "--secret", testSecret, "--codec", codec, "user_id=42", "role=admin", "admin=true")
			require.NoError(t, err)
			require.NotEmpty(t, value)

			raw, err := execute(t, "inspect", "--secret", testSecret, "--codec", codec, value)
			require.NoError(t, err)

			var got inspectOutput
			require.NoError(t, json.Unmarshal([]byte(raw), &got))
			assert.Equal(t, session.StateLoaded.String(), got.State)
			assert.Equal(t, []string{"user_id", "role", "admin"}, got.Keys)
			assert.Equal(t, "admin", got.Attributes["role"])
			assert.Equal(t, true, got.Attributes["admin"])
			assert.EqualValues(t, 42, got.Attributes["user_id"])
		})
	}
}

func TestInspect_WrongSecret(t *testing.T) {
	value, err := execute(t, "sign", "--secret", testSecret, "user_id=42")
	require.NoError(t, err)

	_, err = execute(t, "inspect", "--secret", "fedcba9876543210", value)
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrTamperedCookie)

	raw, err := execute(t, "inspect", "--secret", "fedcba9876543210", "--ignore-tampered", value)
	require.NoError(t, err)

	var got inspectOutput
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, session.StateFresh.String(), got.State)
	assert.Empty(t, got.Attributes)
}

func TestSign_Errors(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "short secret", args: []string{"sign", "--secret", "short", "a=1"}, is: session.ErrInvalidConfig},
		{name: "unknown codec", args: []string{"sign", "--secret", testSecret, "--codec", "xml", "a=1"}, is: session.ErrUnknownCodec},
		{name: "overflow", args: []string{"sign", "--secret", testSecret, "--max-size", "16", "a=1"}, is: session.ErrCookieOverflow},
		{name: "bad attribute", args: []string{"sign", "--secret", testSecret, "novalue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, parseValue("42"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "admin", parseValue("admin"))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version, out)

	out, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Go version:")
}
