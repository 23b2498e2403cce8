package model

import "time"

// Analysis is the result of analyzing one comma-separated input.
// Numbers and Errors are written once by the parser and only read afterwards.
type Analysis struct {
	// ID is the history database identifier. Zero when the analysis was not saved.
	ID int64 `json:"id,omitempty"`

	// Input is the raw argument the analysis was built from.
	Input string `json:"input"`

	// Numbers holds the successfully parsed values in input order.
	Numbers []float64 `json:"numbers"`

	// Errors holds one diagnostic per rejected token, in input order.
	Errors []string `json:"errors,omitempty"`

	// Summary holds the statistics. It is nil when Numbers is empty.
	Summary *Summary `json:"summary,omitempty"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// NewAnalysis creates an Analysis for the given input, timestamped now.
func NewAnalysis(input string, numbers []float64, errs []string) *Analysis {
	return &Analysis{
		Input:      input,
		Numbers:    numbers,
		Errors:     errs,
		AnalyzedAt: time.Now(),
	}
}

// HasNumbers reports whether at least one number was parsed.
func (a *Analysis) HasNumbers() bool {
	return len(a.Numbers) > 0
}

// HasErrors reports whether any token was rejected.
func (a *Analysis) HasErrors() bool {
	return len(a.Errors) > 0
}

// Count returns the number of parsed values.
func (a *Analysis) Count() int {
	return len(a.Numbers)
}
