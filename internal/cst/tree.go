// Package cst provides a lossless concrete syntax tree for Rust sources.
//
// The tree is built from a tree-sitter parse. Every byte of the input belongs
// to exactly one token, whitespace included, so concatenating the token texts
// in document order reproduces the source.
package cst

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Element is either a *Node or a *Token.
type Element interface {
	Kind() Kind
	Range() Range
	Text() string
	Parent() *Node
}

// Node is an inner element of the tree.
type Node struct {
	kind     Kind
	raw      string
	rng      Range
	parent   *Node
	children []Element
	source   []byte
}

// Token is a leaf element of the tree.
type Token struct {
	kind   Kind
	raw    string
	rng    Range
	parent *Node
	text   string
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Range returns the bytes covered by the node, attached trivia included.
func (n *Node) Range() Range { return n.rng }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Text returns the source text of the node.
func (n *Node) Text() string { return string(n.source[n.rng.Start:n.rng.End]) }

// Kind returns the token kind.
func (t *Token) Kind() Kind { return t.kind }

// Range returns the bytes covered by the token.
func (t *Token) Range() Range { return t.rng }

// Parent returns the node holding the token.
func (t *Token) Parent() *Node { return t.parent }

// Text returns the token text.
func (t *Token) Text() string { return t.text }

// Raw returns the tree-sitter kind the node was built from.
func (n *Node) Raw() string { return n.raw }

// Raw returns the tree-sitter kind the token was built from.
func (t *Token) Raw() string { return t.raw }

// ChildrenWithTokens returns all direct children in document order.
func (n *Node) ChildrenWithTokens() []Element {
	return n.children
}

// LastChildOrToken returns the last direct child of any kind, or nil.
func (n *Node) LastChildOrToken() Element {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// ChildOfKind returns the first child node of the given kind, or nil.
func (n *Node) ChildOfKind(kind Kind) *Node {
	for _, c := range n.children {
		if child, ok := c.(*Node); ok && child.kind == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns all child nodes of the given kind.
func (n *Node) ChildrenOfKind(kind Kind) []*Node {
	var nodes []*Node
	for _, c := range n.children {
		if child, ok := c.(*Node); ok && child.kind == kind {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// TokensOfKind returns the direct child tokens of the given kind.
func (n *Node) TokensOfKind(kind Kind) []*Token {
	var tokens []*Token
	for _, c := range n.children {
		if tok, ok := c.(*Token); ok && tok.kind == kind {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// NextSibling returns the element following e in its parent, or nil.
func NextSibling(e Element) Element {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	for i, c := range parent.children {
		if c == e && i+1 < len(parent.children) {
			return parent.children[i+1]
		}
	}
	return nil
}

// PrevSibling returns the element preceding e in its parent, or nil.
func PrevSibling(e Element) Element {
	parent := e.Parent()
	if parent == nil {
		return nil
	}
	for i, c := range parent.children {
		if c == e && i > 0 {
			return parent.children[i-1]
		}
	}
	return nil
}

// Tokens returns every token below n in document order.
func (n *Node) Tokens() []*Token {
	var tokens []*Token
	for _, c := range n.children {
		switch child := c.(type) {
		case *Token:
			tokens = append(tokens, child)
		case *Node:
			tokens = append(tokens, child.Tokens()...)
		}
	}
	return tokens
}

func (n *Node) appendChild(e Element) {
	switch child := e.(type) {
	case *Node:
		child.parent = n
	case *Token:
		child.parent = n
	}
	n.children = append(n.children, e)
}

// prepend moves elements to the front of n, keeping their order.
func (n *Node) prepend(elems []Element) {
	children := make([]Element, 0, len(elems)+len(n.children))
	children = append(children, elems...)
	children = append(children, n.children...)
	n.children = nil
	for _, e := range children {
		n.appendChild(e)
	}
	n.fitRange()
}

// fitRange makes the range of n span its children.
func (n *Node) fitRange() {
	if len(n.children) == 0 {
		return
	}
	n.rng = Range{
		Start: n.children[0].Range().Start,
		End:   n.children[len(n.children)-1].Range().End,
	}
}
