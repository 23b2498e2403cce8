package analyzer

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidNumber is reported for a token that is not a decimal number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrOutOfRange is reported for a numeric token whose magnitude does not fit in a float64.
	ErrOutOfRange = errors.New("number out of range")

	// ErrNoNumbers is returned when not a single token could be parsed.
	ErrNoNumbers = errors.New("no valid numbers parsed")
)

// ParseError is returned when an input yields no numbers at all.
// It carries every per-token message collected while parsing.
type ParseError struct {
	Messages []string
}

// Error formats the messages the way they are printed on stderr.
func (e *ParseError) Error() string {
	return "Error parsing input: " + strings.Join(e.Messages, "\n")
}

// Unwrap allows errors.Is(err, ErrNoNumbers).
func (e *ParseError) Unwrap() error {
	return ErrNoNumbers
}
