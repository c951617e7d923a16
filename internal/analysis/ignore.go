package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// IgnoreFilter decides which module files are left out of the analysis.
// Patterns match slash separated paths relative to the source directory.
type IgnoreFilter struct {
	rootDir  string
	patterns []compiledPattern
}

// NewIgnoreFilter compiles the ignore patterns for files below rootDir.
func NewIgnoreFilter(rootDir string, patterns []string) (*IgnoreFilter, error) {
	f := &IgnoreFilter{rootDir: rootDir}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		f.patterns = append(f.patterns, compiledPattern{pattern: pattern, glob: g})
	}
	return f, nil
}

// Match reports whether path is ignored. Paths outside the root directory
// are never ignored.
func (f *IgnoreFilter) Match(path string) bool {
	if len(f.patterns) == 0 {
		return false
	}

	relPath, err := filepath.Rel(f.rootDir, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, cp := range f.patterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}

	// "**/tests.rs" should also match tests.rs in the root directory.
	if !strings.Contains(relPath, "/") {
		for _, cp := range f.patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			simplified, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/')
			if err == nil && simplified.Match(relPath) {
				return true
			}
		}
	}
	return false
}
