package analyzer

import "github.com/nao1215/numstat/internal/model"

// Analyze parses input and, when at least one number was read, summarizes it.
// The returned Analysis always carries the error log; its Summary is nil when
// no number could be parsed.
func Analyze(input string) *model.Analysis {
	return FromParsed(input, Parse(input))
}

// FromParsed builds the Analysis of an input that has already been parsed.
func FromParsed(input string, parsed Parsed) *model.Analysis {
	analysis := model.NewAnalysis(input, parsed.Numbers, parsed.Errors)
	if parsed.OK() {
		analysis.Summary = Summarize(parsed.Numbers)
	}
	return analysis
}

// Resummarize rebuilds the Summary of an analysis restored from storage.
func Resummarize(analysis *model.Analysis) {
	if analysis.HasNumbers() {
		analysis.Summary = Summarize(analysis.Numbers)
		return
	}
	analysis.Summary = nil
}
