package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/numstat/internal/model"
)

// Report text constants.
const (
	reportTitle     = "Number Analysis Report"
	sectionSep      = "\n\n"
	noNumbersNotice = "Error: No valid numbers parsed"
)

// TextWriter outputs the plain-text statistics report.
//
// The report is assembled as an ordered list of sections joined by a blank
// line, so every section can be tested on its own.
type TextWriter struct {
	baseWriter
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithPrecision sets the number of decimals for floating-point statistics.
func WithPrecision(precision int) TextWriterOption {
	return func(w *TextWriter) {
		w.precision = precision
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report for the analysis.
func (w *TextWriter) Write(analysis *model.Analysis) (int, error) {
	return io.WriteString(w.output, w.Render(analysis))
}

// Render returns the full report text, terminated by a newline.
func (w *TextWriter) Render(analysis *model.Analysis) string {
	return strings.Join(w.Sections(analysis), sectionSep) + "\n"
}

// Sections returns the report sections in output order, without trailing newlines.
func (w *TextWriter) Sections(analysis *model.Analysis) []string {
	sections := []string{header()}

	if analysis.HasErrors() {
		sections = append(sections, "Warnings/Errors:\n"+strings.Join(analysis.Errors, "\n"))
	}

	if !analysis.HasNumbers() {
		return append(sections, noNumbersNotice)
	}

	s := analysis.Summary
	if s == nil {
		// Restored analyses may not carry a summary; callers normally set it.
		return append(sections, noNumbersNotice)
	}

	return append(sections,
		w.section("Basic Statistics",
			w.intLine("Count", s.Count),
			w.floatLine("Sum", s.Sum),
			w.floatLine("Average", s.Average),
			w.floatLine("Median", s.Median),
			w.floatLine("Mode", s.Mode),
		),
		w.section("Range Statistics",
			w.floatLine("Minimum", s.Min),
			w.floatLine("Maximum", s.Max),
			w.floatLine("Range", s.Range),
		),
		w.section("Dispersion Statistics",
			w.floatLine("Standard Deviation", s.StdDev),
			w.floatLine("Variance", s.Variance),
		),
		w.section("Quartile Analysis",
			w.floatLine("Q1 (25th percentile)", s.Quartiles.Q1),
			w.floatLine("Q2 (50th percentile)", s.Quartiles.Q2),
			w.floatLine("Q3 (75th percentile)", s.Quartiles.Q3),
			w.floatLine("IQR", s.IQR),
		),
		w.section("Sign Analysis",
			w.intLine("Positive", s.Signs.Positive),
			w.intLine("Negative", s.Signs.Negative),
			w.intLine("Zero", s.Signs.Zero),
		),
	)
}

func header() string {
	return reportTitle + "\n" + strings.Repeat("=", len(reportTitle))
}

func (w *TextWriter) section(title string, lines ...string) string {
	return title + ":\n" + strings.Join(lines, "\n")
}

func (w *TextWriter) floatLine(label string, v float64) string {
	return fmt.Sprintf("  %s: %s", label, w.formatFloat(v))
}

func (w *TextWriter) intLine(label string, n int) string {
	return fmt.Sprintf("  %s: %d", label, n)
}
