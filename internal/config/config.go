// Package config loads lobster-rust settings.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command line flags (applied by the CLI)
//  2. Environment variables (LOBSTER_RUST_*), also read from a .env file
//  3. Config file (.lobster-rust.yaml)
//  4. Built-in defaults
package config

import (
	"github.com/NewTec-GmbH/lobster-rust/internal/annotations"
	"github.com/NewTec-GmbH/lobster-rust/internal/resolver"
)

// Config represents the complete lobster-rust configuration.
type Config struct {
	SourceDir  string        `yaml:"source_dir" mapstructure:"source_dir"`   // directory holding main.rs or lib.rs
	Output     string        `yaml:"output" mapstructure:"output"`           // interchange file to write
	Lib        bool          `yaml:"lib" mapstructure:"lib"`                 // start at lib.rs instead of main.rs
	OnlyTagged bool          `yaml:"only_tagged" mapstructure:"only_tagged"` // emit only items with refs or justifications
	Markers    MarkersConfig `yaml:"markers" mapstructure:"markers"`
	Ignore     []string      `yaml:"ignore" mapstructure:"ignore"`         // glob patterns of module files to skip
	CacheSize  int           `yaml:"cache_size" mapstructure:"cache_size"` // cached directory listings per file
}

// MarkersConfig holds the phrases that start annotations in comments.
type MarkersConfig struct {
	Trace   string `yaml:"trace" mapstructure:"trace"`
	Exclude string `yaml:"exclude" mapstructure:"exclude"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		SourceDir:  "./src/",
		Output:     "rust.lobster",
		Lib:        false,
		OnlyTagged: false,
		Markers: MarkersConfig{
			Trace:   annotations.DefaultTraceMarker,
			Exclude: annotations.DefaultExcludeMarker,
		},
		Ignore:    []string{},
		CacheSize: resolver.DefaultCacheSize,
	}
}
