package analyzer

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// tokenSeparator splits the input into tokens.
const tokenSeparator = ","

// trimCutset is stripped from both ends of every token.
const trimCutset = " \t\r\n"

// TokenKind classifies the outcome of parsing a single token.
type TokenKind int

const (
	// TokenOK means the token was read as a number.
	TokenOK TokenKind = iota
	// TokenInvalid means the token is not a decimal number.
	TokenInvalid
	// TokenOutOfRange means the token is numeric but too large for a float64.
	TokenOutOfRange
)

// Result is the tagged outcome of ParseToken.
// Value is meaningful only when Kind is TokenOK.
type Result struct {
	// Token is the trimmed token text.
	Token string
	// Value is the parsed number.
	Value float64
	// Kind tells whether Value is usable.
	Kind TokenKind
}

// OK reports whether the token produced a number.
func (r Result) OK() bool {
	return r.Kind == TokenOK
}

// Err returns ErrInvalidNumber or ErrOutOfRange for failed tokens, nil otherwise.
func (r Result) Err() error {
	switch r.Kind {
	case TokenInvalid:
		return ErrInvalidNumber
	case TokenOutOfRange:
		return ErrOutOfRange
	default:
		return nil
	}
}

// Message returns the diagnostic line recorded in the error log,
// or an empty string for a successful token.
func (r Result) Message() string {
	switch r.Kind {
	case TokenInvalid:
		return "Invalid number: " + r.Token
	case TokenOutOfRange:
		return "Number out of range: " + r.Token
	default:
		return ""
	}
}

// ParseToken trims a single token and reads it as a decimal float64.
//
// Accepted syntax is an optional sign, digits with an optional decimal point
// and an optional exponent. Hexadecimal floats and the words inf, infinity
// and nan are rejected as invalid even though strconv accepts them, so every
// parsed value is finite.
func ParseToken(token string) Result {
	trimmed := strings.Trim(token, trimCutset)
	res := Result{Token: trimmed, Kind: TokenInvalid}

	if !looksDecimal(trimmed) {
		return res
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	switch {
	case err == nil:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return res
		}
		res.Value = v
		res.Kind = TokenOK
	case errors.Is(err, strconv.ErrRange):
		res.Kind = TokenOutOfRange
	}
	return res
}

// looksDecimal filters out the non-decimal spellings strconv.ParseFloat accepts.
func looksDecimal(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if body == "" {
		return false
	}
	if len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return false
	}
	c := body[0]
	return c == '.' || (c >= '0' && c <= '9')
}

// Parsed is the immutable outcome of Parse.
type Parsed struct {
	// Numbers holds the parsed values in input order.
	Numbers []float64
	// Errors holds one message per rejected token, in input order.
	Errors []string
}

// OK reports whether at least one number was parsed.
func (p Parsed) OK() bool {
	return len(p.Numbers) > 0
}

// Err returns a *ParseError when no number was parsed.
func (p Parsed) Err() error {
	if p.OK() {
		return nil
	}
	return &ParseError{Messages: append([]string(nil), p.Errors...)}
}

// Parse splits input on commas and parses every token.
// Empty tokens, including the one produced by an empty input, are invalid.
func Parse(input string) Parsed {
	tokens := strings.Split(input, tokenSeparator)
	parsed := Parsed{
		Numbers: make([]float64, 0, len(tokens)),
	}

	for _, token := range tokens {
		res := ParseToken(token)
		if res.OK() {
			parsed.Numbers = append(parsed.Numbers, res.Value)
			continue
		}
		parsed.Errors = append(parsed.Errors, res.Message())
	}

	return parsed
}
