package logger

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the Config struct.
	ErrParsingConfig = errors.New("logger: failed to parse environment config")

	// ErrInvalidLevel is returned for an unrecognized LOG_LEVEL value.
	ErrInvalidLevel = errors.New("logger: invalid log level")

	// ErrInvalidFormat is returned for an unrecognized LOG_FORMAT value.
	ErrInvalidFormat = errors.New("logger: invalid log format")
)
