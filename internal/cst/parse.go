package cst

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// ErrParseFailed is returned when tree-sitter produces no tree.
var ErrParseFailed = errors.New("parse failed")

var language = sitter.NewLanguage(rust.Language())

// Parse parses Rust source text into a lossless tree rooted at a
// KindSourceFile node covering the whole input.
func Parse(source []byte) (*Node, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, ErrParseFailed
	}
	defer tree.Close()

	b := &builder{source: source}
	root := b.node(tree.RootNode(), KindSourceFile)
	b.gap(root, len(source))
	root.rng = Range{Start: 0, End: len(source)}
	return root, nil
}

// builder converts tree-sitter nodes. pos is the end of the last emitted
// token; anything between pos and the next leaf is whitespace.
type builder struct {
	source []byte
	pos    int
}

func (b *builder) node(n *sitter.Node, kind Kind) *Node {
	node := &Node{
		kind:   kind,
		raw:    n.Kind(),
		rng:    Range{Start: int(n.StartByte()), End: int(n.EndByte())},
		source: b.source,
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || child.IsMissing() {
			continue
		}
		b.gap(node, int(child.StartByte()))
		for _, e := range b.element(child, wrapKind(n, child, i)) {
			node.appendChild(e)
		}
	}

	attachTrivia(node)
	node.fitRange()
	return node
}

// element converts one tree-sitter child. wrap, when not KindOther, is the
// node kind the child is re-tagged or wrapped with.
func (b *builder) element(n *sitter.Node, wrap Kind) []Element {
	raw := n.Kind()

	var elems []Element
	switch {
	case raw == "string_literal" || raw == "raw_string_literal":
		lit := &Node{kind: KindLiteral, raw: raw, source: b.source}
		for _, e := range b.leaf(n, KindString) {
			lit.appendChild(e)
		}
		lit.fitRange()
		elems = []Element{lit}
	case n.ChildCount() == 0 || tokenKinds[raw] == KindComment:
		kind, ok := tokenKinds[raw]
		if !ok {
			kind = KindOtherToken
		}
		elems = b.leaf(n, kind)
	default:
		kind, ok := nodeKinds[raw]
		if !ok {
			kind = KindOther
		}
		elems = []Element{b.node(n, kind)}
	}

	if wrap == KindOther {
		return elems
	}
	if len(elems) == 1 {
		if node, ok := elems[0].(*Node); ok {
			node.kind = wrap
			return elems
		}
	}
	wrapper := &Node{kind: wrap, raw: raw, source: b.source}
	for _, e := range elems {
		wrapper.appendChild(e)
	}
	wrapper.fitRange()
	return []Element{wrapper}
}

// leaf emits the whole byte range of n as a single token. A trailing line
// break of a comment becomes its own whitespace token.
func (b *builder) leaf(n *sitter.Node, kind Kind) []Element {
	start, end := int(n.StartByte()), int(n.EndByte())
	b.pos = end

	text := string(b.source[start:end])
	if kind == KindComment && strings.HasSuffix(text, "\n") {
		return []Element{
			&Token{kind: kind, raw: n.Kind(), rng: Range{Start: start, End: end - 1}, text: text[:len(text)-1]},
			&Token{kind: KindWhitespace, raw: "whitespace", rng: Range{Start: end - 1, End: end}, text: "\n"},
		}
	}
	return []Element{&Token{kind: kind, raw: n.Kind(), rng: Range{Start: start, End: end}, text: text}}
}

// gap appends a whitespace token for the bytes between the last emitted
// token and upTo.
func (b *builder) gap(parent *Node, upTo int) {
	if upTo <= b.pos {
		return
	}
	parent.appendChild(&Token{
		kind: KindWhitespace,
		raw:  "whitespace",
		rng:  Range{Start: b.pos, End: upTo},
		text: string(b.source[b.pos:upTo]),
	})
	b.pos = upTo
}

// wrapKind decides whether the i-th child of parent needs a dedicated node
// kind: item names, impl header paths and attribute paths.
func wrapKind(parent, child *sitter.Node, i uint) Kind {
	raw := parent.Kind()
	switch {
	case namedItems[raw]:
		if sameNode(child, parent.ChildByFieldName("name")) {
			return KindName
		}
	case raw == "impl_item":
		if !pathTypes[child.Kind()] {
			return KindOther
		}
		if sameNode(child, parent.ChildByFieldName("trait")) || sameNode(child, parent.ChildByFieldName("type")) {
			return KindPathType
		}
	case raw == "attribute":
		if i == 0 && attributePaths[child.Kind()] {
			return KindPath
		}
	}
	return KindOther
}

func sameNode(a, b *sitter.Node) bool {
	return b != nil &&
		a.StartByte() == b.StartByte() &&
		a.EndByte() == b.EndByte() &&
		a.Kind() == b.Kind()
}
