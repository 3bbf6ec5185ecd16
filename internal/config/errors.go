package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrEmptyDiskPath is returned when no filesystem path is configured.
	ErrEmptyDiskPath = errors.New("invalid disk path: must not be empty")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid report format: must be \"text\" or \"markdown\"")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format: must be \"text\" or \"json\"")

	// ErrInvalidTimeout is returned when the command timeout is negative.
	ErrInvalidTimeout = errors.New("invalid command timeout: must be non-negative")

	// ErrNoDBDir is returned when history is enabled without a database directory.
	ErrNoDBDir = errors.New("history enabled but no database directory configured")
)
