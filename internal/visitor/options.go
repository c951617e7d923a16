package visitor

import (
	"io"
	"log/slog"

	"github.com/NewTec-GmbH/lobster-rust/internal/annotations"
	"github.com/NewTec-GmbH/lobster-rust/internal/resolver"
)

type options struct {
	logger    *slog.Logger
	progress  ProgressReporter
	scanner   *annotations.Scanner
	skip      func(path string) bool
	cacheSize int
}

func defaultOptions() options {
	return options{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress:  noopProgress{},
		scanner:   annotations.DefaultScanner(),
		skip:      func(string) bool { return false },
		cacheSize: resolver.DefaultCacheSize,
	}
}

// Option configures a Visitor. Options are inherited by child visitors.
type Option func(*options)

// WithLogger sets the logger for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(o *options) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithScanner sets the annotation scanner applied to comments.
func WithScanner(s *annotations.Scanner) Option {
	return func(o *options) {
		if s != nil {
			o.scanner = s
		}
	}
}

// WithSkip sets a predicate for module files that must not be analyzed.
func WithSkip(skip func(path string) bool) Option {
	return func(o *options) {
		if skip != nil {
			o.skip = skip
		}
	}
}

// WithCacheSize sets the directory listing cache size of each resolver.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

type noopProgress struct{}

func (noopProgress) OnFileStart(string) {}
func (noopProgress) OnFileDone(string, error) {}
