package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/numstat/internal/analyzer"
	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/database"
	"github.com/nao1215/numstat/internal/report"
)

// maxInputWidth is the number of input characters shown in the history table.
const maxInputWidth = 40

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show stored analyses",
		Long: `History lists analyses saved with --save, newest first.

With --show the stored numbers are summarized again and the full report is
printed, honoring the format and precision from the configuration file.

Examples:
  # List the last 20 analyses
  numstat history

  # List the last 5 analyses
  numstat history -n 5

  # Print the report of analysis 3
  numstat history --show 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of analyses to list (0 lists all)")
	cmd.Flags().Int64P("show", "i", 0,
		"Print the report of the analysis with this ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	db, err := openHistory(cfg.DBDir, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if showID != 0 {
		return showAnalysis(ctx, cmd.OutOrStdout(), db, cfg, showID)
	}
	return listHistory(ctx, cmd.OutOrStdout(), db, limit)
}

// showAnalysis re-renders a stored analysis.
func showAnalysis(ctx context.Context, out io.Writer, db *database.HistoryDB, cfg *config.Config, id int64) error {
	analysis, err := db.GetAnalysisByID(ctx, id)
	if err != nil {
		return err
	}

	analyzer.Resummarize(analysis)

	_, err = report.New(out, cfg, getVersion()).Write(analysis)
	return err
}

// listHistory prints a table of stored analyses.
func listHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, limit int) error {
	entries, err := db.ListAnalyses(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No analyses found in history.")
		fmt.Fprintln(out, "\nUse 'numstat --save <list>' to store an analysis.")
		return nil
	}

	total, err := db.CountAnalyses(ctx)
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}

	fmt.Fprintf(out, "Analysis history (%d of %d entries):\n\n", len(entries), total)
	fmt.Fprintf(out, "  %-6s  %-20s  %6s  %14s  %s\n", "ID", "Date", "Count", "Average", "Input")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 76))

	for _, meta := range entries {
		average := "-"
		if meta.Average.Valid {
			average = report.FormatFloat(meta.Average.Float64, config.DefaultPrecision)
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %6d  %14s  %s\n",
			meta.ID,
			meta.AnalyzedAt.Local().Format("2006-01-02 15:04:05"),
			meta.Count,
			average,
			truncateInput(meta.Input),
		)
	}

	fmt.Fprintln(out, "\nUse 'numstat history --show <id>' to print a stored report.")
	return nil
}

// truncateInput shortens s to maxInputWidth runes.
func truncateInput(s string) string {
	r := []rune(s)
	if len(r) <= maxInputWidth {
		return s
	}
	return string(r[:maxInputWidth-3]) + "..."
}
