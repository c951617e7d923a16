// Package annotations extracts requirement references and justifications
// from comment text.
package annotations

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// DefaultTraceMarker introduces a requirement reference.
	DefaultTraceMarker = "lobster-trace"
	// DefaultExcludeMarker introduces a justification for not tracing an item.
	DefaultExcludeMarker = "lobster-exclude"

	// RefPrefix is prepended to every reference found.
	RefPrefix = "req "
)

// ErrEmptyMarker is returned for an empty marker phrase.
var ErrEmptyMarker = errors.New("empty marker")

// Scanner matches trace and exclude markers in comments.
type Scanner struct {
	trace   *regexp.Regexp
	exclude *regexp.Regexp
}

// Result holds what a single comment contributed.
type Result struct {
	Refs           []string
	Justifications []string
}

// NewScanner builds a scanner for the given marker phrases. Each marker is
// matched literally and must be followed by ": " and an identifier made of
// alphanumerics, '.', '_' and '-'.
func NewScanner(traceMarker, excludeMarker string) (*Scanner, error) {
	trace, err := compile(traceMarker)
	if err != nil {
		return nil, fmt.Errorf("trace marker: %w", err)
	}
	exclude, err := compile(excludeMarker)
	if err != nil {
		return nil, fmt.Errorf("exclude marker: %w", err)
	}
	return &Scanner{trace: trace, exclude: exclude}, nil
}

// DefaultScanner returns a scanner for the lobster markers.
func DefaultScanner() *Scanner {
	s, err := NewScanner(DefaultTraceMarker, DefaultExcludeMarker)
	if err != nil {
		panic(err)
	}
	return s
}

func compile(marker string) (*regexp.Regexp, error) {
	if marker == "" {
		return nil, ErrEmptyMarker
	}
	return regexp.Compile(regexp.QuoteMeta(marker) + `: ([[:alnum:]._-]+)`)
}

// Scan checks both patterns against a comment. Only the first match of each
// pattern counts.
func (s *Scanner) Scan(comment string) Result {
	var res Result
	if m := s.trace.FindStringSubmatch(comment); m != nil {
		res.Refs = append(res.Refs, RefPrefix+m[1])
	}
	if m := s.exclude.FindStringSubmatch(comment); m != nil {
		res.Justifications = append(res.Justifications, m[1])
	}
	return res
}
