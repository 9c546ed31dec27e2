// Package config loads the iodoc configuration.
//
// Values are layered with koanf: built-in defaults, then iodoc.yaml from the
// project root, then IODOC_ environment variables, then command line flags.
package config

import (
	"log/slog"
	"time"

	"github.com/leapstack-labs/iodoc/internal/iotable"
	"github.com/leapstack-labs/iodoc/internal/site"
)

// Config file names, in lookup order.
var ConfigFileNames = []string{"iodoc.yaml", "iodoc.yml"}

// Default configuration values.
const (
	DefaultOutputDir = "iodoc-site"
	DefaultOutput    = "auto" // TTY=text, otherwise html
	DefaultSiteTitle = "I/O examples"
	DefaultSitePort  = 8080
)

// Config holds all CLI configuration options.
type Config struct {
	ProjectRoot       string     `koanf:"-" yaml:"-"`
	ExamplesDir       string     `koanf:"examples_dir" yaml:"examples_dir"`
	IndexFile         string     `koanf:"index_file" yaml:"index_file"`
	OverflowLog       string     `koanf:"overflow_log" yaml:"overflow_log"`   // empty disables the log
	ProcessedLog      string     `koanf:"processed_log" yaml:"processed_log"` // empty disables the log
	MaxTraceLines     int        `koanf:"max_trace_lines" yaml:"max_trace_lines"`
	ShowDerefdPointer bool       `koanf:"show_derefd_pointer" yaml:"show_derefd_pointer"`
	OutputDir         string     `koanf:"output_dir" yaml:"output_dir"`
	OutputFormat      string     `koanf:"output" yaml:"output"`
	Verbose           bool       `koanf:"verbose" yaml:"verbose,omitempty"`
	Site              SiteConfig `koanf:"site" yaml:"site"`
}

// SiteConfig holds the static site and dev server settings.
type SiteConfig struct {
	Title string `koanf:"title" yaml:"title"`
	Port  int    `koanf:"port" yaml:"port"`
	Watch bool   `koanf:"watch" yaml:"watch"`

	// Debounce delays rebuilds after trace changes; zero uses the server default.
	Debounce time.Duration `koanf:"debounce" yaml:"debounce,omitempty"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		ExamplesDir:   iotable.DefaultExamplesDir,
		IndexFile:     iotable.DefaultIndexFile,
		OverflowLog:   iotable.DefaultOverflowLog,
		ProcessedLog:  iotable.DefaultProcessedLog,
		MaxTraceLines: iotable.DefaultMaxTraceLines,
		OutputDir:     DefaultOutputDir,
		OutputFormat:  DefaultOutput,
		Site: SiteConfig{
			Title: DefaultSiteTitle,
			Port:  DefaultSitePort,
			Watch: true,
		},
	}
}

// DriverOptions returns the options for an iotable.Driver.
func (c *Config) DriverOptions(logger *slog.Logger) iotable.Options {
	return iotable.Options{
		ExamplesDir:       c.ExamplesDir,
		IndexFile:         c.IndexFile,
		OverflowLog:       c.OverflowLog,
		ProcessedLog:      c.ProcessedLog,
		MaxTraceLines:     c.MaxTraceLines,
		ShowDerefdPointer: c.ShowDerefdPointer,
		Logger:            logger,
	}
}

// SiteGenerator returns the site generator configuration.
func (c *Config) SiteGenerator(logger *slog.Logger, liveReload bool) site.Config {
	return site.Config{
		Driver:     c.DriverOptions(logger),
		Title:      c.Site.Title,
		OutputDir:  c.OutputDir,
		LiveReload: liveReload,
		Logger:     logger,
	}
}
