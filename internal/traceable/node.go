// Package traceable holds the tree of items collected while walking a file
// and the constructors that turn CST nodes into tree nodes.
package traceable

import (
	"fmt"

	"github.com/NewTec-GmbH/lobster-rust/internal/location"
	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
)

// Kind classifies a traceable node.
type Kind int

const (
	KindSource Kind = iota
	KindStruct
	KindEnum
	KindTrait
	KindFunction
	KindContext
)

// String returns the name used for the kind in interchange output.
func (k Kind) String() string {
	switch k {
	case KindSource:
		return "Module"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindTrait:
		return "Trait"
	case KindFunction:
		return "Function"
	case KindContext:
		return "Context"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ContextData is carried by Context nodes (impl blocks and inline modules).
type ContextData struct {
	Namespace namespace.Context
	// TraitImplemented names the trait of a trait impl. It is never emitted.
	TraitImplemented string
}

// Node is one element of the traceable tree. A node owns its children.
type Node struct {
	Name           string
	Kind           Kind
	Location       location.FileReference
	Children       []*Node
	Refs           []string
	Justifications []string
	ContextData    *ContextData
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Location: location.FileReference{Filename: DefaultFilename},
	}
}

// AppendChild transfers ownership of child to n.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Namespace returns the context contributed by n, Empty for non-context nodes.
func (n *Node) Namespace() namespace.Context {
	if n.Kind != KindContext || n.ContextData == nil {
		return namespace.Empty
	}
	return n.ContextData.Namespace
}

func (n *Node) String() string {
	return fmt.Sprintf("Node %s %s at %s", n.Kind, n.Name, n.Location)
}
