// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - TextWriter: the plain-text statistics report for terminal display
//   - MarkdownWriter: GitHub-flavoured Markdown with tables and a pie chart
//   - JSONWriter: structured JSON output for tool integration
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
