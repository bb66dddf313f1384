// Package config loads application configuration into typed structs.
//
// Load parses environment variables with github.com/caarlos0/env/v11 after
// loading an optional .env file through github.com/joho/godotenv. Every
// configuration type is parsed once and cached; Parse bypasses the cache and
// ResetCache clears it in tests.
//
//	var cfg session.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// LoadYAML reads a YAML file (gopkg.in/yaml.v3) with unknown keys rejected,
// for deployments that keep session settings in a file:
//
//	var cfg session.Config
//	err := config.LoadYAML("session.yaml", &cfg)
//
// Errors wrap ErrParsingConfig, ErrNilPointer, ErrLoadingEnvFile or
// ErrReadingFile and can be matched with errors.Is.
package config
