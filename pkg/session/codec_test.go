package session_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type flashMessage struct {
	Level string
	Text  string
}

func init() {
	session.RegisterType(flashMessage{})
}

func TestGobCodec(t *testing.T) {
	t.Parallel()
	codec := session.GobCodec{}

	t.Run("round trip preserves types and order", func(t *testing.T) {
		attrs := &session.Attributes{}
		attrs.Set("user_id", 42)
		attrs.Set("name", "alice")
		attrs.Set("admin", true)
		attrs.Set("score", 1.5)
		attrs.Set("tags", []any{"a", "b"})
		attrs.Set("prefs", map[string]any{"theme": "dark"})
		attrs.Set("flash", flashMessage{Level: "info", Text: "saved"})
		attrs.Set("nothing", nil)

		text, err := codec.Encode(attrs)
		require.NoError(t, err)

		decoded, err := codec.Decode(text)
		require.NoError(t, err)
		assert.Equal(t, attrs.Keys(), decoded.Keys())
		assert.Equal(t, attrs.Map(), decoded.Map())
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		attrs := session.NewAttributes(map[string]any{"a": 1, "b": "two"})
		first, err := codec.Encode(attrs)
		require.NoError(t, err)
		second, err := codec.Encode(attrs.Clone())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("nested maps encode deterministically", func(t *testing.T) {
		prefs := map[string]any{}
		for _, k := range []string{"theme", "lang", "tz", "font", "density", "layout", "motion", "contrast"} {
			prefs[k] = k + "-value"
		}
		attrs := session.NewAttributes(map[string]any{
			"prefs": prefs,
			"list":  []any{map[string]any{"b": 2, "a": 1, "c": 3}},
		})

		first, err := codec.Encode(attrs)
		require.NoError(t, err)
		for range 20 {
			next, err := codec.Encode(attrs.Clone())
			require.NoError(t, err)
			require.Equal(t, first, next)
		}

		decoded, err := codec.Decode(first)
		require.NoError(t, err)
		got, _ := decoded.Get("prefs")
		assert.Equal(t, prefs, got)
		list, _ := decoded.Get("list")
		assert.Equal(t, []any{map[string]any{"a": 1, "b": 2, "c": 3}}, list)
	})

	t.Run("empty text decodes to empty attributes", func(t *testing.T) {
		attrs, err := codec.Decode("")
		require.NoError(t, err)
		assert.Equal(t, 0, attrs.Len())
	})

	t.Run("corrupt input returns decode error", func(t *testing.T) {
		for _, text := range []string{
			"!!!not base64!!!",
			base64.StdEncoding.EncodeToString([]byte("not gob")),
			base64.StdEncoding.EncodeToString([]byte{0x03, 0xff, 0x81, 0x02}),
		} {
			attrs, err := codec.Decode(text)
			assert.ErrorIs(t, err, session.ErrDecode, text)
			assert.Nil(t, attrs)
		}
	})

	t.Run("unregistered type fails to encode", func(t *testing.T) {
		type unregistered struct{ A int }
		attrs := session.NewAttributes(map[string]any{"x": unregistered{A: 1}})
		_, err := codec.Encode(attrs)
		assert.ErrorIs(t, err, session.ErrEncode)
	})
}

func TestJSONCodec(t *testing.T) {
	t.Parallel()
	codec := session.JSONCodec{}

	t.Run("round trip normalizes numbers", func(t *testing.T) {
		attrs := &session.Attributes{}
		attrs.Set("user_id", 42)
		attrs.Set("name", "alice")
		attrs.Set("admin", false)

		text, err := codec.Encode(attrs)
		require.NoError(t, err)

		decoded, err := codec.Decode(text)
		require.NoError(t, err)
		assert.Equal(t, []string{"user_id", "name", "admin"}, decoded.Keys())
		assert.Equal(t, map[string]any{"user_id": float64(42), "name": "alice", "admin": false}, decoded.Map())
	})

	t.Run("corrupt input returns decode error", func(t *testing.T) {
		_, err := codec.Decode(base64.StdEncoding.EncodeToString([]byte("{broken")))
		assert.ErrorIs(t, err, session.ErrDecode)

		_, err = codec.Decode("%%%")
		assert.ErrorIs(t, err, session.ErrDecode)
	})

	t.Run("unsupported value fails to encode", func(t *testing.T) {
		attrs := session.NewAttributes(map[string]any{"ch": make(chan int)})
		_, err := codec.Encode(attrs)
		assert.ErrorIs(t, err, session.ErrEncode)
	})
}

func TestCodecByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{name: "", want: "gob"},
		{name: "gob", want: "gob"},
		{name: " JSON ", want: "json"},
		{name: "xml", wantErr: session.ErrUnknownCodec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := session.CodecByName(tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, codec.Name())
		})
	}
}
