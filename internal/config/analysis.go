package config

import (
	"log/slog"

	"github.com/NewTec-GmbH/lobster-rust/internal/analysis"
	"github.com/NewTec-GmbH/lobster-rust/internal/visitor"
)

// ToAnalysisOptions converts a Config to analysis.Options.
func (c *Config) ToAnalysisOptions(logger *slog.Logger, progress visitor.ProgressReporter) analysis.Options {
	return analysis.Options{
		SourceDir:     c.SourceDir,
		Lib:           c.Lib,
		OnlyTagged:    c.OnlyTagged,
		TraceMarker:   c.Markers.Trace,
		ExcludeMarker: c.Markers.Exclude,
		Ignore:        c.Ignore,
		CacheSize:     c.CacheSize,
		Logger:        logger,
		Progress:      progress,
	}
}
