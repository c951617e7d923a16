package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptySourceDir indicates a missing source directory
	ErrEmptySourceDir = errors.New("empty source directory")

	// ErrEmptyOutput indicates a missing output file
	ErrEmptyOutput = errors.New("empty output file")

	// ErrEmptyMarker indicates a missing annotation marker
	ErrEmptyMarker = errors.New("empty annotation marker")

	// ErrDuplicateMarker indicates identical trace and exclude markers
	ErrDuplicateMarker = errors.New("duplicate annotation marker")

	// ErrInvalidIgnorePattern indicates an ignore pattern that is not a valid glob
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

	// ErrInvalidCacheSize indicates a non-positive cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.SourceDir) == "" {
		errs = append(errs, fmt.Errorf("%w: source_dir is required", ErrEmptySourceDir))
	}

	if strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, fmt.Errorf("%w: output is required", ErrEmptyOutput))
	}

	errs = append(errs, validateMarkers(&cfg.Markers)...)

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIgnorePattern, pattern, err))
		}
	}

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidCacheSize, cfg.CacheSize))
	}

	return joinErrors(errs)
}

func validateMarkers(cfg *MarkersConfig) []error {
	var errs []error

	if strings.TrimSpace(cfg.Trace) == "" {
		errs = append(errs, fmt.Errorf("%w: markers.trace is required", ErrEmptyMarker))
	}
	if strings.TrimSpace(cfg.Exclude) == "" {
		errs = append(errs, fmt.Errorf("%w: markers.exclude is required", ErrEmptyMarker))
	}
	if cfg.Trace != "" && cfg.Trace == cfg.Exclude {
		errs = append(errs, fmt.Errorf("%w: markers.trace and markers.exclude must differ", ErrDuplicateMarker))
	}

	return errs
}

// validationErrors keeps every error reachable for errors.Is.
type validationErrors []error

func (e validationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e validationErrors) Unwrap() []error {
	return e
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return validationErrors(errs)
	}
}
