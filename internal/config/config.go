package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultPrecision is the number of decimals used for floating-point statistics.
	DefaultPrecision = 4

	// MaxPrecision is the largest accepted precision. float64 carries about
	// 15-17 significant digits, more decimals only print noise.
	MaxPrecision = 15

	// DefaultConcurrency is the number of inputs analyzed in parallel by the batch command.
	DefaultConcurrency = 4

	// DefaultHistoryLimit is the number of entries listed by the history command.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "numstat"
)

// Format names accepted in the config file.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all configuration options for numstat.
// It is populated from the config file and CLI flags and passed explicitly.
type Config struct {
	// Input is the comma-separated list to analyze.
	Input string

	// Precision is the number of decimals for floating-point statistics.
	Precision int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. Empty means stdout.
	ReportFile string

	// TeeReport also prints the report to stdout when ReportFile is set.
	TeeReport bool

	// ConfigFilePath is the path given with --config.
	// If empty, .numstat is searched in the current and home directories.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is the stderr log format: text or json.
	LogFormat string

	// SaveToDB stores each analysis in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	DBDir string

	// Concurrency is the number of parallel analyses in batch mode.
	Concurrency int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Precision:   DefaultPrecision,
		Concurrency: DefaultConcurrency,
		LogFormat:   FormatText,
		DBDir:       XDGDataDir(),
	}
}

// Apply copies the file defaults into the config.
// Zero values in the file leave the current settings untouched.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}

	d := f.Defaults
	if d.Precision != nil {
		c.Precision = *d.Precision
	}
	if d.Concurrency > 0 {
		c.Concurrency = d.Concurrency
	}
	if d.Save {
		c.SaveToDB = true
	}
	switch d.Format {
	case FormatJSON:
		c.JSONReport = true
	case FormatMarkdown:
		c.MarkdownReport = true
	}
}

// XDGDataDir returns the XDG data directory for numstat.
// On Linux: ~/.local/share/numstat
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for numstat.
// On Linux: ~/.config/numstat
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return ErrInvalidPrecision
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.LogFormat != FormatText && c.LogFormat != FormatJSON {
		return ErrInvalidLogFormat
	}
	return nil
}
