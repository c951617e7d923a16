package cst

import "strings"

// attachTrivia moves outer attributes and leading comments that directly
// precede an item into the item node, the way rust-analyzer shapes its tree.
func attachTrivia(parent *Node) {
	out := make([]Element, 0, len(parent.children))
	for _, e := range parent.children {
		item, ok := e.(*Node)
		if !ok || !attractsTrivia[item.raw] {
			out = append(out, e)
			continue
		}
		if n := attachedCount(out); n > 0 {
			item.prepend(out[len(out)-n:])
			out = out[:len(out)-n]
		}
		out = append(out, item)
	}
	parent.children = out
}

// attachedCount returns how many trailing elements of prev belong to the
// item that follows them.
func attachedCount(prev []Element) int {
	// Attributes are part of the item regardless of blank lines.
	start := len(prev)
attributes:
	for j := len(prev) - 1; j >= 0; j-- {
		switch e := prev[j].(type) {
		case *Node:
			if e.kind != KindAttr {
				break attributes
			}
			start = j
		case *Token:
			if e.kind != KindWhitespace && e.kind != KindComment {
				break attributes
			}
		}
	}

	res := start
comments:
	for j := start - 1; j >= 0; j-- {
		tok, ok := prev[j].(*Token)
		if !ok {
			break
		}
		switch tok.kind {
		case KindWhitespace:
			if strings.Contains(tok.text, "\n\n") {
				if j > 0 && isOuterDoc(prev[j-1]) {
					continue
				}
				break comments
			}
		case KindComment:
			if isInnerDoc(tok.text) {
				break comments
			}
			res = j
		default:
			break comments
		}
	}
	return len(prev) - res
}

func isInnerDoc(text string) bool {
	return strings.HasPrefix(text, "//!") || strings.HasPrefix(text, "/*!")
}

func isOuterDoc(e Element) bool {
	tok, ok := e.(*Token)
	if !ok || tok.kind != KindComment {
		return false
	}
	text := tok.text
	switch {
	case strings.HasPrefix(text, "///"):
		return !strings.HasPrefix(text, "////")
	case strings.HasPrefix(text, "/**"):
		return !strings.HasPrefix(text, "/***") && text != "/**/"
	}
	return false
}
