package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/numstat/internal/analyzer"
	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/database"
	"github.com/nao1215/numstat/internal/model"
	"github.com/nao1215/numstat/internal/report"
)

// errNotEnoughHistory is returned when fewer than two analyses are stored.
var errNotEnoughHistory = errors.New("at least 2 saved analyses are required for comparison")

// NewCompareCmd creates the compare command.
// This command compares two analyses stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [previous-id current-id]",
		Short: "Compare two stored analyses",
		Long: `Compare prints how every statistic changed between two saved analyses.

Without arguments the two most recent analyses are compared. Use
'numstat history' to see the available IDs.

Examples:
  # Compare the latest two analyses
  numstat compare

  # Compare analysis 3 with analysis 7
  numstat compare 3 7

  # Output comparison in JSON format
  numstat compare --json`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("compare takes no arguments or exactly two IDs, got %d", len(args))
			}
			return nil
		},
		RunE: runCompareCmd,
	}

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	// Validate IDs before opening the database
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd)
	cfg, err := buildConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	db, err := openHistory(cfg.DBDir, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	previous, current, err := loadPair(cmd.Context(), db, ids)
	if err != nil {
		return err
	}

	comparison := model.Compare(previous, current)
	if comparison == nil {
		return errors.New("both analyses must contain at least one number")
	}

	out := cmd.OutOrStdout()
	switch {
	case cfg.JSONReport:
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteComparison(comparison)
		return err
	case cfg.MarkdownReport:
		return outputComparisonMarkdown(out, cfg, previous, current, comparison)
	default:
		return outputComparisonText(out, cfg, previous, current, comparison)
	}
}

// parseIDs converts the positional arguments to analysis IDs.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid analysis ID %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// loadPair fetches the analyses to compare: the given IDs in order, or the
// latest two with the older one first.
func loadPair(ctx context.Context, db *database.HistoryDB, ids []int64) (*model.Analysis, *model.Analysis, error) {
	var previous, current *model.Analysis

	if len(ids) == 2 {
		var err error
		if previous, err = db.GetAnalysisByID(ctx, ids[0]); err != nil {
			return nil, nil, err
		}
		if current, err = db.GetAnalysisByID(ctx, ids[1]); err != nil {
			return nil, nil, err
		}
	} else {
		latest, err := db.GetLatestAnalyses(ctx, 2)
		if err != nil {
			return nil, nil, err
		}
		if len(latest) < 2 {
			return nil, nil, fmt.Errorf("%w (found %d)", errNotEnoughHistory, len(latest))
		}
		previous, current = latest[1], latest[0]
	}

	analyzer.Resummarize(previous)
	analyzer.Resummarize(current)
	return previous, current, nil
}

// outputComparisonText outputs the comparison in human-readable text format.
func outputComparisonText(out io.Writer, cfg *config.Config, previous, current *model.Analysis, c *model.Comparison) error {
	fmt.Fprintf(out, "Analysis Comparison: #%d -> #%d\n", c.PreviousID, c.CurrentID)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious: %s  %s\n", previous.AnalyzedAt.Local().Format("2006-01-02 15:04:05"), truncateInput(previous.Input))
	fmt.Fprintf(out, "Current:  %s  %s\n", current.AnalyzedAt.Local().Format("2006-01-02 15:04:05"), truncateInput(current.Input))

	fmt.Fprintln(out, "\nStatistics:")
	fmt.Fprintf(out, "  %-20s  %14s  %14s  %14s  %s\n", "Statistic", "Previous", "Current", "Change", "Trend")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 80))
	for _, d := range c.Deltas {
		fmt.Fprintf(out, "  %-20s  %14s  %14s  %14s  %s\n",
			d.Name,
			formatValue(cfg, d.Previous, d.IsCount),
			formatValue(cfg, d.Current, d.IsCount),
			formatDelta(cfg, d),
			formatDirection(d.Direction),
		)
	}

	fmt.Fprintf(out, "\nChanged: %d of %d statistics\n", len(c.Changed()), len(c.Deltas))
	return nil
}

// outputComparisonMarkdown outputs the comparison in Markdown format.
func outputComparisonMarkdown(out io.Writer, cfg *config.Config, previous, current *model.Analysis, c *model.Comparison) error {
	fmt.Fprintf(out, "# Analysis Comparison: #%d -> #%d\n\n", c.PreviousID, c.CurrentID)

	fmt.Fprintln(out, "| | Date | Input |")
	fmt.Fprintln(out, "|---|---|---|")
	fmt.Fprintf(out, "| Previous | %s | `%s` |\n", previous.AnalyzedAt.Local().Format("2006-01-02 15:04"), truncateInput(previous.Input))
	fmt.Fprintf(out, "| Current | %s | `%s` |\n\n", current.AnalyzedAt.Local().Format("2006-01-02 15:04"), truncateInput(current.Input))

	fmt.Fprintln(out, "## Statistics")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "| Statistic | Previous | Current | Change |")
	fmt.Fprintln(out, "|-----------|----------|---------|--------|")
	for _, d := range c.Deltas {
		fmt.Fprintf(out, "| %s | %s | %s | %s |\n",
			d.Name,
			formatValue(cfg, d.Previous, d.IsCount),
			formatValue(cfg, d.Current, d.IsCount),
			formatDelta(cfg, d),
		)
	}

	fmt.Fprintf(out, "\n---\n\n*%d of %d statistics changed*\n", len(c.Changed()), len(c.Deltas))
	return nil
}

// formatDirection returns the direction as a title-cased label.
func formatDirection(d model.Direction) string {
	return cases.Title(language.English).String(string(d))
}

// formatValue renders a statistic value, counts without decimals.
func formatValue(cfg *config.Config, v float64, isCount bool) string {
	if isCount {
		return strconv.Itoa(int(v))
	}
	return report.FormatFloat(v, cfg.Precision)
}

// formatDelta formats a delta with sign for display.
func formatDelta(cfg *config.Config, d model.StatDelta) string {
	switch d.Direction {
	case model.DirectionIncreased:
		return "+" + formatValue(cfg, d.Delta, d.IsCount)
	case model.DirectionDecreased:
		return formatValue(cfg, d.Delta, d.IsCount)
	default:
		return "0"
	}
}
