package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/numstat/internal/analyzer"
	"github.com/nao1215/numstat/internal/config"
	ilog "github.com/nao1215/numstat/internal/log"
	"github.com/nao1215/numstat/internal/report"
)

const fullReport = `Number Analysis Report
======================

Basic Statistics:
  Count: 6
  Sum: 108.0000
  Average: 18.0000
  Median: 15.5000
  Mode: 4.0000

Range Statistics:
  Minimum: 4.0000
  Maximum: 42.0000
  Range: 38.0000

Dispersion Statistics:
  Standard Deviation: 12.3153
  Variance: 151.6667

Quartile Analysis:
  Q1 (25th percentile): 8.0000
  Q2 (50th percentile): 16.0000
  Q3 (75th percentile): 23.0000
  IQR: 15.0000

Sign Analysis:
  Positive: 6
  Negative: 0
  Zero: 0
`

func TestRunAnalyzeCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints full text report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "4, 8, 15, 16, 23, 42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(fullReport, stdout); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing argument prints usage", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "")
		if !errors.Is(err, errMissingInput) {
			t.Fatalf("expected errMissingInput, got %v", err)
		}
		if err.Error() != "Usage: numstat '<comma-separated-numbers>'" {
			t.Errorf("unexpected usage message %q", err.Error())
		}
		if stdout != "" {
			t.Errorf("expected no stdout, got %q", stdout)
		}
	})

	t.Run("no valid numbers is an error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "abc,1e999")
		if !errors.Is(err, analyzer.ErrNoNumbers) {
			t.Fatalf("expected ErrNoNumbers, got %v", err)
		}
		want := "Error parsing input: Invalid number: abc\nNumber out of range: 1e999"
		if err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
		if stdout != "" {
			t.Errorf("expected no report, got %q", stdout)
		}
	})

	t.Run("warnings are printed inline", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "1,abc,3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Warnings/Errors:\nInvalid number: abc\n\nBasic Statistics:") {
			t.Errorf("expected warnings section, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "  Count: 2\n") {
			t.Errorf("expected count 2, got:\n%s", stdout)
		}
	})

	t.Run("negative list is not a flag", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "-2,0,3,-5,7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Sign Analysis:\n  Positive: 2\n  Negative: 2\n  Zero: 1\n") {
			t.Errorf("unexpected sign analysis:\n%s", stdout)
		}
	})

	t.Run("dash-prefixed invalid token is a warning", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input   string
			warning string
			count   string
		}{
			{"-x,1,2", "Invalid number: -x\n", "  Count: 2\n"},
			{"- 1,2", "Invalid number: - 1\n", "  Count: 1\n"},
			{"-inf,3", "Invalid number: -inf\n", "  Count: 1\n"},
		}
		for _, tt := range tests {
			env := newTestEnv(t, "")
			stdout, _, err := env.run(t, "", tt.input)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", tt.input, err)
			}
			if !strings.Contains(stdout, "Warnings/Errors:\n"+tt.warning) {
				t.Errorf("%q: expected warning %q, got:\n%s", tt.input, tt.warning, stdout)
			}
			if !strings.Contains(stdout, tt.count) {
				t.Errorf("%q: expected %q, got:\n%s", tt.input, tt.count, stdout)
			}
		}
	})

	t.Run("extra arguments are ignored", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "4,8,15,16,23,42", "99", "abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(fullReport, stdout); diff != "" {
			t.Errorf("report mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "--json", "1,2,3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if got.Version == "" {
			t.Error("expected version in JSON report")
		}
		if got.Analysis == nil || got.Analysis.Summary == nil {
			t.Fatal("expected analysis with summary")
		}
		if got.Analysis.Summary.Sum != 6 {
			t.Errorf("Sum = %v, want 6", got.Analysis.Summary.Sum)
		}
	})

	t.Run("overflowed statistics", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "", "1e308,1e308")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "  Sum: inf\n  Average: inf\n") {
			t.Errorf("expected inf statistics, got:\n%s", stdout)
		}

		stdout, _, err = env.run(t, "", "--json", "1e308,1e308")
		if err != nil {
			t.Fatalf("json: unexpected error: %v", err)
		}
		var got report.JSONReport
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if got.Analysis == nil || got.Analysis.Summary == nil || !math.IsInf(got.Analysis.Summary.Variance, 1) {
			t.Errorf("unexpected analysis %+v", got.Analysis)
		}

		_, stderr, err := env.run(t, "", "--save", "1e308,1e308")
		if err != nil {
			t.Fatalf("save: unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Saved analysis #1") {
			t.Errorf("expected save confirmation, got %q", stderr)
		}

		stdout, _, err = env.run(t, "history", "--show", "1")
		if err != nil {
			t.Fatalf("history: unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "  Standard Deviation: inf\n") {
			t.Errorf("expected stored report with inf, got:\n%s", stdout)
		}
	})

	t.Run("markdown report to file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		outPath := filepath.Join(env.dir, "reports", "stats.md")
		stdout, _, err := env.run(t, "", "-m", "-o", outPath, "1,2,3,4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Report written to "+outPath) {
			t.Errorf("expected confirmation, got %q", stdout)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.HasPrefix(string(content), "# ") {
			t.Errorf("expected markdown heading, got:\n%s", content)
		}

		info, err := os.Stat(outPath)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})

	t.Run("tee prints report and writes file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		outPath := filepath.Join(env.dir, "stats.txt")
		stdout, _, err := env.run(t, "", "-t", "-o", outPath, "4,8,15,16,23,42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(fullReport, stdout); diff != "" {
			t.Errorf("stdout mismatch (-want +got):\n%s", diff)
		}

		content, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if diff := cmp.Diff(fullReport, string(content)); diff != "" {
			t.Errorf("file mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json logs", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, stderr, err := env.run(t, "", "-v", "--log-format", "json", "1,2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, _, _ := strings.Cut(stderr, "\n")
		if !json.Valid([]byte(first)) {
			t.Errorf("expected JSON log line, got %q", first)
		}
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, _, err := env.run(t, "", "--log-format", "xml", "1,2")
		if !errors.Is(err, config.ErrInvalidLogFormat) {
			t.Errorf("expected ErrInvalidLogFormat, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, _, err := env.run(t, "", "--json", "--markdown", "1,2")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("config file precision and format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "defaults:\n  precision: 1\n")
		stdout, _, err := env.run(t, "", "1,2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "  Average: 1.5\n") {
			t.Errorf("expected one decimal, got:\n%s", stdout)
		}
	})

	t.Run("format flag overrides config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "defaults:\n  format: markdown\n")
		stdout, _, err := env.run(t, "", "--json", "1,2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !json.Valid([]byte(stdout)) {
			t.Errorf("expected JSON output, got:\n%s", stdout)
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "defaults:\n  format: xml\n")
		_, _, err := env.run(t, "", "1,2")
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		env.configPath = filepath.Join(env.dir, "missing.yaml")
		_, _, err := env.run(t, "", "1,2")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("verbose logs to stderr", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, stderr, err := env.run(t, "", "-v", "1,2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "analysis complete") {
			t.Errorf("expected debug logs on stderr, got %q", stderr)
		}
	})

	t.Run("save stores the analysis", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, stderr, err := env.run(t, "", "--save", "1,2,3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Saved analysis #1") {
			t.Errorf("expected save confirmation, got %q", stderr)
		}

		stdout, _, err := env.run(t, "history")
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(stdout, "1,2,3") {
			t.Errorf("expected saved input in history, got:\n%s", stdout)
		}
	})

	t.Run("save from config file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "defaults:\n  save: true\n")
		_, stderr, err := env.run(t, "", "5,6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stderr, "Saved analysis #1") {
			t.Errorf("expected save confirmation, got %q", stderr)
		}
	})
}

func TestApplyConfigFile(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), config.DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		return path
	}

	t.Run("valid file applies defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		path := writeConfig(t, "defaults:\n  precision: 2\n")
		if err := applyConfigFile(cfg, path, false, ilog.NewLogger(io.Discard, false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Precision != 2 {
			t.Errorf("Precision = %d, want 2", cfg.Precision)
		}
	})

	t.Run("broken explicit file is an error", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		path := writeConfig(t, "defaults:\n  format: xml\n")
		err := applyConfigFile(cfg, path, true, ilog.NewLogger(io.Discard, false))
		if !errors.Is(err, config.ErrInvalidFormat) {
			t.Errorf("expected ErrInvalidFormat, got %v", err)
		}
	})

	t.Run("broken discovered file is skipped", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		cfg := config.NewConfig()
		path := writeConfig(t, "defaults: [not, a, map\n")
		if err := applyConfigFile(cfg, path, false, ilog.NewLogger(&logs, false)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(config.NewConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
		if !strings.Contains(logs.String(), "ignoring invalid configuration file") {
			t.Errorf("expected warning, got %q", logs.String())
		}
	})
}
