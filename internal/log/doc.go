// Package log provides numstat's logging setup, built on top of the standard
// slog package.
//
// The ClampHandler wraps any slog.Handler and shortens oversized string
// attributes before they reach the output. Inputs are passed on the command
// line and may contain thousands of numbers; logging them verbatim would bury
// the useful part of a log line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("analysis finished", "input", input, "count", n)
//	slog.SetDefault(logger)
package log
