package config

import "errors"

// Configuration validation errors returned by Config.Validate and File.Validate.
var (
	// ErrInvalidPrecision is returned when the precision is outside 0..MaxPrecision.
	ErrInvalidPrecision = errors.New("invalid precision: must be between 0 and 15")

	// ErrConflictingReportFormats is returned when both --json and --markdown are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidConcurrency is returned when the batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidFormat is returned when the config file names an unknown format.
	ErrInvalidFormat = errors.New("invalid format: must be text, json or markdown")

	// ErrInvalidLogFormat is returned when --log-format is neither text nor json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)
