package report

import (
	"fmt"
	"io"
	"math"

	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report for one analysis.
	// Returns the number of bytes written and any error encountered.
	Write(analysis *model.Analysis) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// Our Writer writes analyses, not raw bytes, so io.MultiWriter does not apply.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(analysis *model.Analysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(analysis)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output    io.Writer
	precision int
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output, precision: config.DefaultPrecision}
}

// formatFloat renders v in fixed-point notation with the writer's precision.
func (b baseWriter) formatFloat(v float64) string {
	return FormatFloat(v, b.precision)
}

// FormatFloat renders v in fixed-point notation with precision decimals.
// Overflowed statistics print as inf, -inf or nan.
func FormatFloat(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// formatStat renders a statistic, counts without decimals.
func (b baseWriter) formatStat(s model.Stat) string {
	if s.IsCount {
		return fmt.Sprintf("%d", int(s.Value))
	}
	return b.formatFloat(s.Value)
}

// New returns the writer selected by cfg: JSON, Markdown or plain text.
func New(output io.Writer, cfg *config.Config, version string) Writer {
	switch {
	case cfg.JSONReport:
		return NewFullJSONWriter(output, version, WithPrettyPrint())
	case cfg.MarkdownReport:
		return NewMarkdownWriter(output, WithMarkdownPrecision(cfg.Precision))
	default:
		return NewTextWriter(output, WithPrecision(cfg.Precision))
	}
}
