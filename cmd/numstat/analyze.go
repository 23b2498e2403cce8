package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/numstat/internal/analyzer"
	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/database"
	ilog "github.com/nao1215/numstat/internal/log"
	"github.com/nao1215/numstat/internal/model"
	"github.com/nao1215/numstat/internal/report"
)

// usageLine is printed when no list is given.
const usageLine = "Usage: numstat '<comma-separated-numbers>'"

// errMissingInput is returned when the root command runs without a list.
var errMissingInput = errors.New(usageLine)

// runAnalyzeCmd analyzes the first positional argument.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	if len(args) == 0 {
		return errMissingInput
	}
	if len(args) > 1 {
		logger.Debug("ignoring extra arguments", "count", len(args)-1)
	}

	cfg, err := buildConfig(cmd, logger)
	if err != nil {
		return err
	}
	cfg.Input = args[0]

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.Info("starting analysis", "input", cfg.Input, "saveToDB", cfg.SaveToDB)

	parsed := analyzer.Parse(cfg.Input)
	if err := parsed.Err(); err != nil {
		return err
	}
	analysis := analyzer.FromParsed(cfg.Input, parsed)

	logger.Info("analysis complete",
		"count", analysis.Count(),
		"warnings", len(analysis.Errors),
	)

	if err := outputReport(cmd.OutOrStdout(), cfg, analysis); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.SaveToDB {
		id, err := saveAnalysis(cmd.Context(), cfg.DBDir, analysis, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved analysis #%d\n", id)
	}

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogFormat retrieves the log format, text when unset.
func getLogFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil || format == "" {
		return config.FormatText
	}
	return format
}

// setupLogger creates a stderr logger at the verbosity selected by --verbose.
// Unknown formats fall back to text; Config.Validate reports them.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	if getLogFormat(cmd) == config.FormatJSON {
		return ilog.NewJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	}
	return ilog.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// buildConfig creates a Config from the configuration file and command flags.
// Flags explicitly set on the command line win over the file.
func buildConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.LogFormat = getLogFormat(cmd)

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		if err := applyConfigFile(cfg, configPath, cfg.ConfigFilePath != "", logger); err != nil {
			return nil, err
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("json") || flags.Changed("markdown") {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("save") {
		if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("output") != nil {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
		if cfg.TeeReport, err = flags.GetBool("tee"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyConfigFile loads path and applies its defaults to cfg.
// A broken file named with --config is an error; a discovered one is
// skipped with a warning and the built-in defaults stay in effect.
func applyConfigFile(cfg *config.Config, path string, explicit bool, logger *slog.Logger) error {
	file, err := config.LoadConfigFile(path)
	if err != nil {
		if explicit {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		logger.Warn("ignoring invalid configuration file", "path", path, "error", err)
		return nil
	}
	cfg.Apply(file)
	logger.Debug("configuration file loaded", "path", path)
	return nil
}

// outputReport writes the report to cfg.ReportFile, or to stdout when empty.
func outputReport(stdout io.Writer, cfg *config.Config, analysis *model.Analysis) error {
	if cfg.ReportFile == "" {
		_, err := report.New(stdout, cfg, getVersion()).Write(analysis)
		return err
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	var w report.Writer = report.New(f, cfg, getVersion())
	if cfg.TeeReport {
		w = report.NewMultiWriter(w, report.New(stdout, cfg, getVersion()))
	}
	if _, err := w.Write(analysis); err != nil {
		return err
	}

	if !cfg.TeeReport {
		fmt.Fprintf(stdout, "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}

// openHistory opens the history database in dbDir.
func openHistory(dbDir string, logger *slog.Logger) (*database.HistoryDB, error) {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", "path", db.Path())
	return db, nil
}

// saveAnalysis stores analysis in the history database and returns its ID.
func saveAnalysis(ctx context.Context, dbDir string, analysis *model.Analysis, logger *slog.Logger) (int64, error) {
	db, err := openHistory(dbDir, logger)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	id, err := db.SaveAnalysis(ctx, analysis)
	if err != nil {
		return 0, err
	}
	logger.Info("analysis saved", "id", id)
	return id, nil
}
