package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/numstat/internal/report"
)

func TestNewBatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewBatchCmd()

	flag := cmd.Flags().Lookup("concurrency")
	if flag == nil {
		t.Fatal("expected concurrency flag")
	}
	if flag.Shorthand != "b" {
		t.Errorf("expected shorthand 'b', got %q", flag.Shorthand)
	}
	if flag.DefValue != "4" {
		t.Errorf("expected default '4', got %q", flag.DefValue)
	}
}

func TestRunBatchCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports in argument order", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "batch", "-b", "2", "1,2,3", "10,20", "-1,-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		first := strings.Index(stdout, "[1/3] 1,2,3")
		second := strings.Index(stdout, "[2/3] 10,20")
		third := strings.Index(stdout, "[3/3] -1,-2")
		if first < 0 || second < 0 || third < 0 {
			t.Fatalf("missing report headers:\n%s", stdout)
		}
		if first >= second || second >= third {
			t.Errorf("reports out of order:\n%s", stdout)
		}
		if strings.Count(stdout, "Number Analysis Report") != 3 {
			t.Errorf("expected 3 reports:\n%s", stdout)
		}
	})

	t.Run("failed input still reported", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "batch", "1,2", "abc")
		if !errors.Is(err, errBatchFailed) {
			t.Fatalf("expected errBatchFailed, got %v", err)
		}
		if !strings.Contains(stdout, "Error: No valid numbers parsed") {
			t.Errorf("expected no-numbers notice:\n%s", stdout)
		}
		if !strings.Contains(stdout, "  Count: 2") {
			t.Errorf("expected report for valid input:\n%s", stdout)
		}
	})

	t.Run("json reports", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		stdout, _, err := env.run(t, "batch", "--json", "1", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dec := json.NewDecoder(strings.NewReader(stdout))
		var inputs []string
		for dec.More() {
			var r report.JSONReport
			if err := dec.Decode(&r); err != nil {
				t.Fatalf("invalid JSON stream: %v", err)
			}
			inputs = append(inputs, r.Analysis.Input)
		}
		if len(inputs) != 2 || inputs[0] != "1" || inputs[1] != "2" {
			t.Errorf("unexpected inputs %v", inputs)
		}
	})

	t.Run("save stores successful inputs", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, _, err := env.run(t, "batch", "--save", "1,2", "x", "3,4")
		if !errors.Is(err, errBatchFailed) {
			t.Fatalf("expected errBatchFailed, got %v", err)
		}

		stdout, _, err := env.run(t, "history")
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(stdout, "(2 of 2 entries)") {
			t.Errorf("expected 2 stored analyses:\n%s", stdout)
		}
	})

	t.Run("requires at least one input", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		if _, _, err := env.run(t, "batch"); err == nil {
			t.Error("expected error without inputs")
		}
	})

	t.Run("invalid concurrency", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, _, err := env.run(t, "batch", "-b", "0", "1")
		if err == nil || !strings.Contains(err.Error(), "concurrency") {
			t.Errorf("expected concurrency error, got %v", err)
		}
	})
}
