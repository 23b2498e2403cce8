package config

// Defaults holds the settings a .numstat file may override.
type Defaults struct {
	// Format is the default report format: text, json or markdown.
	Format string `yaml:"format,omitempty"`

	// Precision is the number of decimals. A pointer so that 0 can be set explicitly.
	Precision *int `yaml:"precision,omitempty"`

	// Save stores every analysis in the history database.
	Save bool `yaml:"save,omitempty"`

	// Concurrency is the batch concurrency.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// File represents the structure of the .numstat configuration file.
type File struct {
	Defaults Defaults `yaml:"defaults,omitempty"`
}

// Validate checks the values read from the file.
func (f *File) Validate() error {
	switch f.Defaults.Format {
	case "", FormatText, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}
	if p := f.Defaults.Precision; p != nil && (*p < 0 || *p > MaxPrecision) {
		return ErrInvalidPrecision
	}
	if f.Defaults.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	return nil
}
