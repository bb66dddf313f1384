package config_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/config"
)

type defaultsConfig struct {
	Name  string `env:"SESSIONKIT_TEST_DEFAULT_NAME" envDefault:"_session_id"`
	Limit int    `env:"SESSIONKIT_TEST_DEFAULT_LIMIT" envDefault:"100"`
	Flag  bool   `env:"SESSIONKIT_TEST_DEFAULT_FLAG" envDefault:"true"`
}

type successConfig struct {
	Name  string `env:"SESSIONKIT_TEST_NAME" envDefault:"_session_id"`
	Limit int    `env:"SESSIONKIT_TEST_LIMIT" envDefault:"100"`
}

type singletonConfig struct {
	Value string `env:"SESSIONKIT_TEST_SINGLETON" envDefault:"default"`
}

type requiredConfig struct {
	Secret string `env:"SESSIONKIT_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Value string `env:"SESSIONKIT_TEST_FILE_VALUE"`
	Int   int    `env:"SESSIONKIT_TEST_FILE_INT"`
}

type yamlConfig struct {
	Name           string `yaml:"name"`
	RetryLimit     int    `yaml:"retry_limit"`
	IgnoreTampered bool   `yaml:"ignore_tampered"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("SESSIONKIT_TEST_NAME", "_app")
	t.Setenv("SESSIONKIT_TEST_LIMIT", "5")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "_app", cfg.Name)
	assert.Equal(t, 5, cfg.Limit)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("SESSIONKIT_TEST_DEFAULT_NAME")
	os.Unsetenv("SESSIONKIT_TEST_DEFAULT_LIMIT")
	os.Unsetenv("SESSIONKIT_TEST_DEFAULT_FLAG")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "_session_id", cfg.Name)
	assert.Equal(t, 100, cfg.Limit)
	assert.True(t, cfg.Flag)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("SESSIONKIT_TEST_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	// a failed parse is not cached
	t.Setenv("SESSIONKIT_TEST_REQUIRED", "now-set")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "now-set", cfg.Secret)
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("SESSIONKIT_TEST_SINGLETON", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("SESSIONKIT_TEST_SINGLETON", "second")

	var second singletonConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)

	var parsed singletonConfig
	require.NoError(t, config.Parse(&parsed))
	assert.Equal(t, "second", parsed.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *successConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("SESSIONKIT_TEST_FILE_VALUE")
	os.Unsetenv("SESSIONKIT_TEST_FILE_INT")
	t.Cleanup(func() {
		os.Unsetenv("SESSIONKIT_TEST_FILE_VALUE")
		os.Unsetenv("SESSIONKIT_TEST_FILE_INT")
	})
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Value)
	assert.Equal(t, 7, cfg.Int)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}

func TestLoadYAML(t *testing.T) {
	t.Run("decodes known fields", func(t *testing.T) {
		var cfg yamlConfig
		require.NoError(t, config.LoadYAML("testdata/session.yaml", &cfg))
		assert.Equal(t, "_app_session", cfg.Name)
		assert.Equal(t, 5, cfg.RetryLimit)
		assert.True(t, cfg.IgnoreTampered)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		var cfg yamlConfig
		assert.ErrorIs(t, config.LoadYAML("testdata/unknown.yaml", &cfg), config.ErrParsingConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		var cfg yamlConfig
		assert.ErrorIs(t, config.LoadYAML("testdata/nope.yaml", &cfg), config.ErrReadingFile)
	})

	t.Run("empty document keeps values", func(t *testing.T) {
		cfg := yamlConfig{Name: "kept"}
		require.NoError(t, config.DecodeYAML(strings.NewReader(""), &cfg))
		assert.Equal(t, "kept", cfg.Name)
	})
}
