package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/iodoc/internal/render"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxTraceLines <= 0 {
		return fmt.Errorf("max_trace_lines must be positive, got %d", c.MaxTraceLines)
	}
	if _, err := render.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if c.Site.Port < 1 || c.Site.Port > 65535 {
		return fmt.Errorf("site.port must be between 1 and 65535, got %d", c.Site.Port)
	}
	if c.Site.Debounce < 0 {
		return fmt.Errorf("site.debounce must not be negative, got %s", c.Site.Debounce)
	}
	return nil
}

// ValidateInputs checks that the trace directory and index file exist.
func (c *Config) ValidateInputs() error {
	if info, err := os.Stat(c.ExamplesDir); err != nil || !info.IsDir() {
		return fmt.Errorf("examples directory does not exist: %s\nHint: run the instrumented build first or use --examples-dir", c.ExamplesDir)
	}
	if _, err := os.Stat(c.IndexFile); err != nil {
		return fmt.Errorf("index file does not exist: %s\nHint: use --index-file to point at parameterids.txt", c.IndexFile)
	}
	return nil
}
