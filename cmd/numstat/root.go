package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/numstat/internal/config"
)

// NewRootCmd creates the root command for numstat.
// Invoked with a list argument it analyzes that list.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numstat '<comma-separated-numbers>'",
		Short: "Descriptive statistics for a comma-separated list of numbers",
		Long: `numstat parses a comma-separated list of numbers and prints a statistics
report: count, sum, average, median, mode, range, standard deviation,
variance, quartiles and sign counts.

Tokens that are not numbers are reported as warnings and skipped. If no
token can be parsed the errors are printed to stderr and numstat exits 1.

Examples:
  # Analyze a list
  numstat '4, 8, 15, 16, 23, 42'

  # Lists starting with a negative number are accepted as-is
  numstat -2,0,3

  # Markdown report written to a file
  numstat -m -o report.md '1,2,3'

  # Store the analysis in the history database
  numstat --save '1,2,3'`,
		Version:       getVersion(),
		Args:          cobra.ArbitraryArgs,
		RunE:          runAnalyzeCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .numstat in current or home directory)")
	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")
	cmd.PersistentFlags().String("log-format", config.FormatText,
		"Log format on stderr: text or json")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("tee", "t", false,
		"Also print the report to stdout when --output is set")
	cmd.Flags().BoolP("save", "s", false,
		"Store the analysis in the history database")

	// Add subcommands
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	cmd := NewRootCmd()
	cmd.SetArgs(normalizeArgs(cmd, os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// normalizeArgs inserts "--" before the first argument that looks like a
// number list rather than a flag, so "-2,0,3" or "-x,1,2" reach the analyzer
// instead of the flag parser. Flags must precede such a list.
func normalizeArgs(root *cobra.Command, args []string) []string {
	shorthands := registeredShorthands(root)
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if looksLikeList(arg, shorthands) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

// registeredShorthands collects the shorthand letters of every flag of root
// and its subcommands, help included.
func registeredShorthands(root *cobra.Command) map[byte]bool {
	shorthands := make(map[byte]bool)
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.InitDefaultHelpFlag()
		c.InitDefaultVersionFlag()
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				if f.Shorthand != "" {
					shorthands[f.Shorthand[0]] = true
				}
			})
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	return shorthands
}

// looksLikeList reports whether a single-dash argument is a list: it holds a
// separator or blank, starts like a negative number, or names no shorthand.
func looksLikeList(arg string, shorthands map[byte]bool) bool {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return false
	}
	if strings.ContainsAny(arg, ", \t") {
		return true
	}
	c := arg[1]
	if (c >= '0' && c <= '9') || c == '.' {
		return true
	}
	return !shorthands[c]
}
