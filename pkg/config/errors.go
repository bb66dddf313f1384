package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment or a file cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse config")

	// ErrConfigNotLoaded is returned when attempting to access a config that hasn't been loaded
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when a nil pointer is provided to a loader
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrLoadingEnvFile is returned when a .env file cannot be loaded
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrReadingFile is returned when a configuration file cannot be read
	ErrReadingFile = errors.New("failed to read config file")
)
