package cst

// Visitor receives callbacks during Walk.
type Visitor interface {
	// Enter is called before the children of a node are visited.
	Enter(n *Node) error
	// Exit is called after the children of a node are visited.
	Exit(n *Node) error
	// Token is called for every token, in document order.
	Token(t *Token) error
}

// Walk traverses the tree rooted at n depth first, left to right. The first
// error returned by a callback stops the walk.
func Walk(n *Node, v Visitor) error {
	if err := v.Enter(n); err != nil {
		return err
	}
	for _, c := range n.children {
		var err error
		switch child := c.(type) {
		case *Node:
			err = Walk(child, v)
		case *Token:
			err = v.Token(child)
		}
		if err != nil {
			return err
		}
	}
	return v.Exit(n)
}
