// Package analyzer turns a comma-separated list of numbers into an Analysis.
//
// Parsing is pure: Parse returns a Parsed value holding the numbers that could
// be read and one message per malformed token. Each token is classified by
// ParseToken into a tagged Result, so invalid and out-of-range tokens are
// ordinary values rather than control flow.
//
// The statistics functions (Sum, Average, Median, Mode, StdDev, Variance,
// Quartiles, Bounds, Signs) never modify their input. Order statistics work on
// a sorted copy.
package analyzer
