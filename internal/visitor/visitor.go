// Package visitor walks the syntax tree of one Rust file, builds its
// traceable tree and spawns visitors for the module files it declares.
package visitor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/NewTec-GmbH/lobster-rust/internal/cst"
	"github.com/NewTec-GmbH/lobster-rust/internal/location"
	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
	"github.com/NewTec-GmbH/lobster-rust/internal/resolver"
	"github.com/NewTec-GmbH/lobster-rust/internal/traceable"
)

var (
	// ErrAlreadyParsed is returned when a visitor is run twice.
	ErrAlreadyParsed = errors.New("file already parsed")

	// ErrNotParsed is returned when results are requested before parsing.
	ErrNotParsed = errors.New("file not parsed")

	// ErrReadFile wraps failures to read the root file.
	ErrReadFile = errors.New("failed to read source file")
)

// Placeholder columns used until the defining keyword corrects a location.
const (
	fnPlaceholderColumn     = 0
	structPlaceholderColumn = 1
)

type state int

const (
	stateBefore state = iota
	stateTraversing
	stateDone
)

// frame is a stack entry: the node under construction and the CST node that
// opened it.
type frame struct {
	node   *traceable.Node
	origin *cst.Node
}

// ProgressReporter is notified when a file is visited.
type ProgressReporter interface {
	OnFileStart(path string)
	OnFileDone(path string, err error)
}

// Visitor analyzes a single file. Module files it declares are analyzed by
// child visitors after its own traversal has finished.
type Visitor struct {
	filePath       string
	defaultContext namespace.Context
	ancestors      []string
	opts           options

	state    state
	tracker  *location.Tracker
	stack    []frame
	resolver *resolver.Resolver
	modules  []*Visitor
}

// New creates a visitor for filePath. defaultContext is prepended to every
// name found in the file.
func New(filePath string, defaultContext namespace.Context, opts ...Option) *Visitor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Visitor{
		filePath:       filePath,
		defaultContext: defaultContext,
		opts:           o,
		tracker:        location.NewTracker(),
	}
}

// FilePath returns the file this visitor analyzes.
func (v *Visitor) FilePath() string {
	return v.filePath
}

// Modules returns the child visitors in declaration order.
func (v *Visitor) Modules() []*Visitor {
	return v.modules
}

// filename is the stem of the analyzed file, used as the first name segment.
func (v *Visitor) filename() string {
	return resolver.Stem(v.filePath)
}

// ParseFile reads, parses and traverses the file, then runs every child
// visitor in declaration order.
//
// Failing to read or parse the file is an error for the root visitor. For
// child visitors it is logged and only drops that module.
func (v *Visitor) ParseFile() error {
	if v.state != stateBefore {
		return ErrAlreadyParsed
	}
	v.opts.progress.OnFileStart(v.filePath)

	err := v.parseOwnFile()
	v.opts.progress.OnFileDone(v.filePath, err)
	if err != nil {
		v.state = stateDone
		return err
	}

	for _, child := range v.modules {
		if err := child.ParseFile(); err != nil {
			if errors.Is(err, ErrReadFile) || errors.Is(err, cst.ErrParseFailed) {
				v.opts.logger.Warn("skipping module file", "file", child.filePath, "error", err)
				continue
			}
			return err
		}
	}
	return nil
}

func (v *Visitor) parseOwnFile() error {
	source, err := os.ReadFile(v.filePath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadFile, v.filePath, err)
	}
	root, err := cst.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", v.filePath, err)
	}
	return v.Travel(root)
}

// Travel traverses an already parsed tree. Child visitors are registered but
// not run.
func (v *Visitor) Travel(root *cst.Node) error {
	if v.state != stateBefore {
		return ErrAlreadyParsed
	}
	v.state = stateTraversing
	err := cst.Walk(root, v)
	v.state = stateDone
	if err != nil {
		return fmt.Errorf("%s: %w", v.filePath, err)
	}
	return nil
}

// TraceableNodes pops this visitor's root node and collects it together with
// the root nodes of all child visitors, depth first in declaration order.
func (v *Visitor) TraceableNodes() []*traceable.Node {
	var out []*traceable.Node
	if v.state == stateDone && len(v.stack) > 0 {
		out = append(out, v.stack[0].node)
		v.stack = v.stack[1:]
	}
	for _, child := range v.modules {
		out = append(out, child.TraceableNodes()...)
	}
	return out
}

// Root returns the root node without removing it, or ErrNotParsed.
func (v *Visitor) Root() (*traceable.Node, error) {
	if v.state != stateDone || len(v.stack) == 0 {
		return nil, ErrNotParsed
	}
	return v.stack[0].node, nil
}

func (v *Visitor) top() *frame {
	if len(v.stack) == 0 {
		return nil
	}
	return &v.stack[len(v.stack)-1]
}

func (v *Visitor) push(node *traceable.Node, origin *cst.Node) {
	v.stack = append(v.stack, frame{node: node, origin: origin})
}

// pop removes the stack top if it was opened by origin with the given kind.
func (v *Visitor) pop(origin *cst.Node, kind traceable.Kind) (*traceable.Node, bool) {
	top := v.top()
	if top == nil || top.origin != origin || top.node.Kind != kind {
		return nil, false
	}
	v.stack = v.stack[:len(v.stack)-1]
	return top.node, true
}

// fold pops the node opened by origin and appends it to the new stack top.
func (v *Visitor) fold(origin *cst.Node, kind traceable.Kind) {
	closed, ok := v.pop(origin, kind)
	if !ok {
		return
	}
	if parent := v.top(); parent != nil {
		parent.node.AppendChild(closed)
	}
}

// enclosingContext sums the namespaces of all Context nodes on the stack.
func (v *Visitor) enclosingContext() namespace.Context {
	var contexts []namespace.Context
	for _, f := range v.stack {
		if f.node.Kind == traceable.KindContext {
			contexts = append(contexts, f.node.Namespace())
		}
	}
	return namespace.Sum(contexts...)
}

// namePrefix is the qualified prefix of items entered now.
func (v *Visitor) namePrefix() string {
	return v.defaultContext.Append(v.filename()).Combine(v.enclosingContext()).String()
}

func (v *Visitor) approximateLocation(column int) location.FileReference {
	return location.NewFileReference(v.filePath, v.tracker.Line(), column)
}

// isAncestor reports whether path is already being analyzed further up the
// chain of visitors.
func (v *Visitor) isAncestor(path string) bool {
	clean := filepath.Clean(path)
	return clean == filepath.Clean(v.filePath) || slices.Contains(v.ancestors, clean)
}

func (v *Visitor) spawn(path string, ctx namespace.Context) {
	child := New(path, ctx)
	child.opts = v.opts
	child.ancestors = append(slices.Clone(v.ancestors), filepath.Clean(v.filePath))
	v.modules = append(v.modules, child)
}

// logger returns the logger annotated with the current file.
func (v *Visitor) logger() *slog.Logger {
	return v.opts.logger.With("file", v.filePath)
}
