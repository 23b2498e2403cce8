// Package main provides the entry point for the numstat CLI.
//
// numstat parses a comma-separated list of numbers and prints descriptive
// statistics: central tendency, range, dispersion, quartiles and signs.
//
// Usage:
//
//	numstat '<comma-separated-numbers>'
//	numstat batch '<list>' '<list>' ...
//
// See --help for all available options.
package main

// main is the entry point for numstat.
func main() {
	Execute()
}
