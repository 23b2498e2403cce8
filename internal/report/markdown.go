package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/numstat/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// Sections are rendered as tables, warnings as an alert block and the sign
// distribution as a mermaid pie chart.
type MarkdownWriter struct {
	baseWriter
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownPrecision sets the number of decimals for floating-point statistics.
func WithMarkdownPrecision(precision int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.precision = precision
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the analysis in Markdown format.
func (w *MarkdownWriter) Write(analysis *model.Analysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1(reportTitle)
	md.PlainText("")

	w.writeWarnings(md, analysis)

	if !analysis.HasNumbers() || analysis.Summary == nil {
		md.Cautionf(noNumbersNotice)
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	s := analysis.Summary
	w.writeTable(md, "Basic Statistics", s.Stats()[0:5])
	w.writeTable(md, "Range Statistics", s.Stats()[5:8])
	w.writeTable(md, "Dispersion Statistics", s.Stats()[8:10])
	w.writeQuartiles(md, s)
	w.writeSigns(md, s.Signs)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Analyzed at %s*", analysis.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))

	return len(md.String()), md.Build()
}

// writeWarnings writes the rejected tokens as a warning alert and list.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, analysis *model.Analysis) {
	if !analysis.HasErrors() {
		return
	}

	md.H2("Warnings/Errors")
	md.PlainText("")
	md.Warningf("%d token(s) could not be parsed and were skipped.", len(analysis.Errors))
	md.PlainText("")
	md.BulletList(analysis.Errors...)
	md.PlainText("")
}

// writeTable writes one section as a two-column table.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, title string, stats []model.Stat) {
	md.H2(title)
	md.PlainText("")

	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{s.Name, w.formatStat(s)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeQuartiles writes the quartile table, noting when the list is too short.
func (w *MarkdownWriter) writeQuartiles(md *markdown.Markdown, s *model.Summary) {
	md.H2("Quartile Analysis")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Quartile", "Value"},
		Rows: [][]string{
			{"Q1 (25th percentile)", w.formatFloat(s.Quartiles.Q1)},
			{"Q2 (50th percentile)", w.formatFloat(s.Quartiles.Q2)},
			{"Q3 (75th percentile)", w.formatFloat(s.Quartiles.Q3)},
			{"IQR", w.formatFloat(s.IQR)},
		},
	})
	md.PlainText("")

	if s.Count < 4 {
		md.Note("Quartiles need at least 4 values and are reported as zero.")
		md.PlainText("")
	}
}

// writeSigns writes the sign table and a mermaid pie chart of the distribution.
func (w *MarkdownWriter) writeSigns(md *markdown.Markdown, signs model.SignCounts) {
	md.H2("Sign Analysis")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Sign", "Count"},
		Rows: [][]string{
			{"Positive", strconv.Itoa(signs.Positive)},
			{"Negative", strconv.Itoa(signs.Negative)},
			{"Zero", strconv.Itoa(signs.Zero)},
			{"**Total**", "**" + strconv.Itoa(signs.Total()) + "**"},
		},
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Sign Distribution"),
		piechart.WithShowData(true),
	)
	if signs.Positive > 0 {
		chart.LabelAndIntValue("Positive", uint64(signs.Positive))
	}
	if signs.Negative > 0 {
		chart.LabelAndIntValue("Negative", uint64(signs.Negative))
	}
	if signs.Zero > 0 {
		chart.LabelAndIntValue("Zero", uint64(signs.Zero))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
