package resolver

import (
	"strings"

	"github.com/NewTec-GmbH/lobster-rust/internal/cst"
)

// PathAttribute returns the value of the first `#[path = "..."]` attribute of
// a module node.
func PathAttribute(mod *cst.Node) (string, bool) {
	for _, attr := range mod.ChildrenOfKind(cst.KindAttr) {
		if p, ok := pathValue(attr); ok {
			return p, true
		}
	}
	return "", false
}

func pathValue(attr *cst.Node) (string, bool) {
	meta := attr.ChildOfKind(cst.KindMeta)
	if meta == nil {
		return "", false
	}
	path := meta.ChildOfKind(cst.KindPath)
	if path == nil || path.Text() != "path" {
		return "", false
	}
	lit := meta.ChildOfKind(cst.KindLiteral)
	if lit == nil {
		return "", false
	}
	strs := lit.TokensOfKind(cst.KindString)
	if len(strs) == 0 {
		return "", false
	}
	return unquote(strs[0].Text())
}

// unquote strips the delimiters of a plain or raw string literal.
func unquote(lit string) (string, bool) {
	if strings.HasPrefix(lit, "r") {
		lit = strings.Trim(lit[1:], "#")
	}
	if len(lit) < 2 || lit[0] != '"' || lit[len(lit)-1] != '"' {
		return "", false
	}
	return lit[1 : len(lit)-1], true
}
