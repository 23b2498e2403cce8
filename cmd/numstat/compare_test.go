package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/model"
)

// saveInputs stores each input through the root command.
func saveInputs(t *testing.T, env *testEnv, inputs ...string) {
	t.Helper()

	for _, in := range inputs {
		if _, _, err := env.run(t, "", "--save", in); err != nil {
			t.Fatalf("save %q failed: %v", in, err)
		}
	}
}

func TestRunCompareCmd(t *testing.T) {
	t.Parallel()

	t.Run("latest two analyses", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		saveInputs(t, env, "1,2,3", "1,2,3,10")

		stdout, _, err := env.run(t, "compare")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Analysis Comparison: #1 -> #2") {
			t.Errorf("unexpected header:\n%s", stdout)
		}
		if !strings.Contains(stdout, "+10.0000") {
			t.Errorf("expected sum delta:\n%s", stdout)
		}
		if !strings.Contains(stdout, "+1") {
			t.Errorf("expected count delta:\n%s", stdout)
		}
		if !strings.Contains(stdout, "Increased") || !strings.Contains(stdout, "Unchanged") {
			t.Errorf("expected trend labels:\n%s", stdout)
		}
	})

	t.Run("explicit ids in json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		saveInputs(t, env, "5,5", "1,1", "5,5")

		stdout, _, err := env.run(t, "compare", "--json", "1", "3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var c model.Comparison
		if err := json.Unmarshal([]byte(stdout), &c); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout)
		}
		if c.PreviousID != 1 || c.CurrentID != 3 {
			t.Errorf("unexpected ids %d -> %d", c.PreviousID, c.CurrentID)
		}
		if len(c.Changed()) != 0 {
			t.Errorf("expected no changes, got %+v", c.Changed())
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		saveInputs(t, env, "1", "2")

		stdout, _, err := env.run(t, "compare", "-m")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "| Statistic | Previous | Current | Change |") {
			t.Errorf("expected markdown table:\n%s", stdout)
		}
		if !strings.Contains(stdout, "| Average | 1.0000 | 2.0000 | +1.0000 |") {
			t.Errorf("expected average row:\n%s", stdout)
		}
	})

	t.Run("requires two analyses", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		saveInputs(t, env, "1")

		_, _, err := env.run(t, "compare")
		if !errors.Is(err, errNotEnoughHistory) {
			t.Errorf("expected errNotEnoughHistory, got %v", err)
		}
	})

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		_, _, err := env.run(t, "compare", "-j", "-m")
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})

	t.Run("rejects a single id", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		if _, _, err := env.run(t, "compare", "1"); err == nil {
			t.Error("expected error for a single id")
		}
	})
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"none", nil, false},
		{"two ids", []string{"1", "2"}, false},
		{"not a number", []string{"a", "2"}, true},
		{"zero", []string{"0", "2"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseIDs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseIDs(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestFormatDirection(t *testing.T) {
	t.Parallel()

	tests := map[model.Direction]string{
		model.DirectionIncreased: "Increased",
		model.DirectionDecreased: "Decreased",
		model.DirectionUnchanged: "Unchanged",
	}
	for in, want := range tests {
		if got := formatDirection(in); got != want {
			t.Errorf("formatDirection(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	tests := []struct {
		name  string
		delta model.StatDelta
		want  string
	}{
		{"increase", model.StatDelta{Delta: 1.5, Direction: model.DirectionIncreased}, "+1.5000"},
		{"decrease", model.StatDelta{Delta: -2, Direction: model.DirectionDecreased}, "-2.0000"},
		{"count increase", model.StatDelta{Delta: 3, Direction: model.DirectionIncreased, IsCount: true}, "+3"},
		{"unchanged", model.StatDelta{Direction: model.DirectionUnchanged}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatDelta(cfg, tt.delta); got != tt.want {
				t.Errorf("formatDelta() = %q, want %q", got, tt.want)
			}
		})
	}
}
