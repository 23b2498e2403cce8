package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/numstat/internal/batch"
	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/report"
)

// errBatchFailed is returned when at least one batch input parsed no numbers.
var errBatchFailed = errors.New("one or more inputs could not be analyzed")

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <list>...",
		Short: "Analyze several lists concurrently",
		Long: `Batch analyzes every argument as its own comma-separated list.

Reports are printed in argument order. Inputs without a single valid number
still get a report ending with "Error: No valid numbers parsed", and the
command exits 1 when that happens for any input.

Examples:
  # Analyze three lists, two at a time
  numstat batch -b 2 '1,2,3' '4,5,6' '7,8,9'

  # Store every successful analysis
  numstat batch --save '1,2' '3,4'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent analyses")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON reports (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown reports (mutually exclusive with --json)")
	cmd.Flags().BoolP("save", "s", false,
		"Store every analysis with numbers in the history database")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Cancel in-flight analyses on interrupt
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []batch.Option{
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithLogger(logger),
	}
	if cfg.SaveToDB {
		db, err := openHistory(cfg.DBDir, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, batch.WithSaver(db))
	}

	startTime := time.Now()
	results, err := batch.NewProcessor(opts...).Process(ctx, args)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	writer := report.New(out, cfg, getVersion())
	failed := 0
	for i, analysis := range results {
		if !cfg.JSONReport {
			fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(results), analysis.Input)
		}
		if _, err := writer.Write(analysis); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if !cfg.JSONReport {
			fmt.Fprintln(out)
		}
		if !analysis.HasNumbers() {
			failed++
		}
	}

	logger.Info("batch finished",
		"inputs", len(results),
		"failed", failed,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errBatchFailed, failed, len(results))
	}
	return nil
}
