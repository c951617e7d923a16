package analysis

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/NewTec-GmbH/lobster-rust/internal/visitor"
)

// ModuleGraph builds the module inclusion graph below root. Vertices are file
// paths relative to baseDir, edges point from the declaring file to the
// module file.
func ModuleGraph(root *visitor.Visitor, baseDir string) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())
	if err := addModule(g, root, baseDir); err != nil {
		return nil, err
	}
	return g, nil
}

func addModule(g graph.Graph[string, string], v *visitor.Visitor, baseDir string) error {
	from := relative(baseDir, v.FilePath())
	if err := g.AddVertex(from); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add module %s: %w", from, err)
	}

	for _, child := range v.Modules() {
		to := relative(baseDir, child.FilePath())
		if err := g.AddVertex(to); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return fmt.Errorf("failed to add module %s: %w", to, err)
		}
		if err := g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("failed to link %s to %s: %w", from, to, err)
		}
		if err := addModule(g, child, baseDir); err != nil {
			return err
		}
	}
	return nil
}

// WriteDOT renders the module graph in Graphviz DOT format.
func WriteDOT(w io.Writer, g graph.Graph[string, string]) error {
	if err := draw.DOT(g, w); err != nil {
		return fmt.Errorf("failed to render module graph: %w", err)
	}
	return nil
}

func relative(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
