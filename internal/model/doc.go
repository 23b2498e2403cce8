// Package model defines the data structures shared by numstat packages.
//
// This package contains the following main types:
//   - Analysis: the parsed input (numbers and error log) plus its Summary
//   - Summary: every descriptive statistic computed for an Analysis
//   - Comparison: per-statistic differences between two stored analyses
//
// The models are serializable to JSON for report output and database storage.
package model
