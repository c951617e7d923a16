// Package analysis runs the traversal over a crate, starting at its root file,
// and turns the result into an interchange document.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/NewTec-GmbH/lobster-rust/internal/annotations"
	"github.com/NewTec-GmbH/lobster-rust/internal/lobster"
	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
	"github.com/NewTec-GmbH/lobster-rust/internal/visitor"
)

const (
	// BinaryRoot is the root file of a binary crate.
	BinaryRoot = "main.rs"
	// LibraryRoot is the root file of a library crate.
	LibraryRoot = "lib.rs"
)

var (
	// ErrInvalidPattern is returned for ignore patterns that do not compile.
	ErrInvalidPattern = errors.New("invalid ignore pattern")

	// ErrRootIgnored is returned when the ignore patterns match the root file.
	ErrRootIgnored = errors.New("root file is ignored")
)

// Options configure a run.
type Options struct {
	// SourceDir holds the crate root file.
	SourceDir string
	// Lib selects lib.rs instead of main.rs as root file.
	Lib bool
	// OnlyTagged keeps only records that carry refs or justifications.
	OnlyTagged bool

	TraceMarker   string
	ExcludeMarker string

	// Ignore lists glob patterns of module files to leave out.
	Ignore []string
	// CacheSize bounds the directory listings cached per visitor.
	CacheSize int

	Logger   *slog.Logger
	Progress visitor.ProgressReporter
}

// Result is the outcome of a run.
type Result struct {
	// Root is the visitor of the crate root file. Its Modules form the
	// module tree.
	Root     *visitor.Visitor
	Document *lobster.Document
}

// RootFile returns the path of the crate root file in dir.
func RootFile(dir string, lib bool) string {
	if lib {
		return filepath.Join(dir, LibraryRoot)
	}
	return filepath.Join(dir, BinaryRoot)
}

// Run analyzes the crate in opts.SourceDir.
func Run(opts Options) (*Result, error) {
	root, err := Traverse(opts)
	if err != nil {
		return nil, err
	}

	records := lobster.Flatten(root.TraceableNodes(), lobster.Options{OnlyTagged: opts.OnlyTagged})
	return &Result{
		Root:     root,
		Document: lobster.NewDocument(records),
	}, nil
}

// Traverse parses the root file and every module file reachable from it.
// The returned visitor still holds its traceable nodes.
func Traverse(opts Options) (*visitor.Visitor, error) {
	scanner, err := newScanner(opts)
	if err != nil {
		return nil, err
	}

	filter, err := NewIgnoreFilter(opts.SourceDir, opts.Ignore)
	if err != nil {
		return nil, err
	}

	rootFile := RootFile(opts.SourceDir, opts.Lib)
	if filter.Match(rootFile) {
		return nil, fmt.Errorf("%w: %s", ErrRootIgnored, rootFile)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("starting analysis", "root", rootFile)

	root := visitor.New(rootFile, namespace.Empty,
		visitor.WithLogger(logger),
		visitor.WithProgress(opts.Progress),
		visitor.WithScanner(scanner),
		visitor.WithSkip(filter.Match),
		visitor.WithCacheSize(opts.CacheSize),
	)
	if err := root.ParseFile(); err != nil {
		return nil, err
	}
	return root, nil
}

func newScanner(opts Options) (*annotations.Scanner, error) {
	trace, exclude := opts.TraceMarker, opts.ExcludeMarker
	if trace == "" {
		trace = annotations.DefaultTraceMarker
	}
	if exclude == "" {
		exclude = annotations.DefaultExcludeMarker
	}
	return annotations.NewScanner(trace, exclude)
}
