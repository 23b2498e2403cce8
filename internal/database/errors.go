package database

import "errors"

// ErrAnalysisNotFound is returned when no stored analysis has the requested ID.
var ErrAnalysisNotFound = errors.New("analysis not found")
