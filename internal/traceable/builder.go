package traceable

import (
	"errors"
	"fmt"

	"github.com/NewTec-GmbH/lobster-rust/internal/cst"
	"github.com/NewTec-GmbH/lobster-rust/internal/location"
	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
)

// DefaultFilename is the location of nodes built without a known file.
const DefaultFilename = "main.rs"

var (
	// ErrMissingName indicates an item without a name child.
	ErrMissingName = errors.New("missing name")

	// ErrMalformedImpl indicates an impl header with an unexpected shape.
	ErrMalformedImpl = errors.New("malformed impl")

	// ErrUnexpectedKind indicates a CST node that does not map to the requested node kind.
	ErrUnexpectedKind = errors.New("unexpected syntax kind")
)

// FromSource builds the root node of a file.
func FromSource(n *cst.Node, filename string) (*Node, error) {
	if err := expect(n, cst.KindSourceFile); err != nil {
		return nil, err
	}
	return newNode(filename, KindSource), nil
}

// FromFunction builds a function node named prefix + "." + name at loc.
func FromFunction(n *cst.Node, prefix string, loc location.FileReference) (*Node, error) {
	return fromItem(n, cst.KindFn, KindFunction, prefix, loc)
}

// FromStruct builds a struct node named prefix + "." + name at loc.
func FromStruct(n *cst.Node, prefix string, loc location.FileReference) (*Node, error) {
	return fromItem(n, cst.KindStruct, KindStruct, prefix, loc)
}

func fromItem(n *cst.Node, want cst.Kind, kind Kind, prefix string, loc location.FileReference) (*Node, error) {
	if err := expect(n, want); err != nil {
		return nil, err
	}
	name := n.ChildOfKind(cst.KindName)
	if name == nil {
		return nil, fmt.Errorf("%w: %s at byte %d", ErrMissingName, n.Kind(), n.Range().Start)
	}
	node := newNode(prefix+"."+name.Text(), kind)
	node.Location = loc
	return node, nil
}

// FromTrait builds a trait node. Traits only exist to scope what is nested in
// them, so a missing name is tolerated.
func FromTrait(n *cst.Node) (*Node, error) {
	if err := expect(n, cst.KindTrait); err != nil {
		return nil, err
	}
	var name string
	if nameNode := n.ChildOfKind(cst.KindName); nameNode != nil {
		name = nameNode.Text()
	}
	return newNode(name, KindTrait), nil
}

// FromImpl builds a context node for an impl block.
//
// `impl Target` yields the context Target. `impl Trait for Target` yields the
// context Target and records Trait. Anything else is ErrMalformedImpl.
func FromImpl(n *cst.Node) (*Node, error) {
	if err := expect(n, cst.KindImpl); err != nil {
		return nil, err
	}

	paths := n.ChildrenOfKind(cst.KindPathType)
	var data ContextData
	switch len(paths) {
	case 1:
		data.Namespace = namespace.FromString(paths[0].Text())
	case 2:
		if len(n.TokensOfKind(cst.KindForKw)) == 0 {
			return nil, fmt.Errorf("%w: two paths without for at byte %d", ErrMalformedImpl, n.Range().Start)
		}
		data.Namespace = namespace.FromString(paths[1].Text())
		data.TraitImplemented = paths[0].Text()
	default:
		return nil, fmt.Errorf("%w: %d paths at byte %d", ErrMalformedImpl, len(paths), n.Range().Start)
	}

	node := newNode("Impl", KindContext)
	node.ContextData = &data
	return node, nil
}

// FromModule builds a context node for an inline module definition.
func FromModule(n *cst.Node) (*Node, error) {
	if err := expect(n, cst.KindModule); err != nil {
		return nil, err
	}
	name := n.ChildOfKind(cst.KindName)
	if name == nil {
		return nil, fmt.Errorf("%w: module at byte %d", ErrMissingName, n.Range().Start)
	}
	node := newNode(name.Text(), KindContext)
	node.ContextData = &ContextData{Namespace: namespace.FromString(name.Text())}
	return node, nil
}

func expect(n *cst.Node, kind cst.Kind) error {
	if n.Kind() != kind {
		return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedKind, n.Kind(), kind)
	}
	return nil
}
