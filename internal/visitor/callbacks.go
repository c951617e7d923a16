package visitor

import (
	"fmt"

	"github.com/NewTec-GmbH/lobster-rust/internal/cst"
	"github.com/NewTec-GmbH/lobster-rust/internal/location"
	"github.com/NewTec-GmbH/lobster-rust/internal/resolver"
	"github.com/NewTec-GmbH/lobster-rust/internal/traceable"
)

// Enter implements cst.Visitor.
func (v *Visitor) Enter(n *cst.Node) error {
	switch n.Kind() {
	case cst.KindSourceFile:
		return v.enterSource(n)
	case cst.KindFn:
		v.enterItem(n, traceable.FromFunction, fnPlaceholderColumn)
	case cst.KindStruct:
		v.enterItem(n, traceable.FromStruct, structPlaceholderColumn)
	case cst.KindTrait:
		return v.enterTrait(n)
	case cst.KindImpl:
		v.enterImpl(n)
	case cst.KindModule:
		return v.enterModule(n)
	}
	return nil
}

// Exit implements cst.Visitor.
func (v *Visitor) Exit(n *cst.Node) error {
	switch n.Kind() {
	case cst.KindFn:
		v.fold(n, traceable.KindFunction)
	case cst.KindStruct:
		v.fold(n, traceable.KindStruct)
	case cst.KindImpl, cst.KindModule:
		v.fold(n, traceable.KindContext)
	case cst.KindTrait:
		// Traits and everything declared in them are not traced.
		v.pop(n, traceable.KindTrait)
	}
	return nil
}

// Token implements cst.Visitor.
func (v *Visitor) Token(t *cst.Token) error {
	switch t.Kind() {
	case cst.KindWhitespace, cst.KindString:
		v.tracker.Observe(t.Range().Start, t.Text())
	case cst.KindComment:
		v.tracker.Observe(t.Range().Start, t.Text())
		v.visitComment(t)
	case cst.KindFnKw:
		v.visitKeyword(t, cst.KindFn, traceable.KindFunction)
	case cst.KindStructKw:
		v.visitKeyword(t, cst.KindStruct, traceable.KindStruct)
	}
	return nil
}

func (v *Visitor) enterSource(n *cst.Node) error {
	root, err := traceable.FromSource(n, v.filename())
	if err != nil {
		return err
	}
	root.Location = location.FileReference{Filename: v.filePath}
	v.push(root, n)
	return nil
}

type itemBuilder func(*cst.Node, string, location.FileReference) (*traceable.Node, error)

// enterItem pushes a function or struct. The location is approximate until
// the defining keyword is visited.
func (v *Visitor) enterItem(n *cst.Node, build itemBuilder, column int) {
	loc := v.approximateLocation(column)
	node, err := build(n, v.namePrefix(), loc)
	if err != nil {
		v.logger().Warn("skipping item", "line", v.tracker.Line(), "error", err)
		return
	}
	v.push(node, n)
}

func (v *Visitor) enterTrait(n *cst.Node) error {
	node, err := traceable.FromTrait(n)
	if err != nil {
		return err
	}
	v.push(node, n)
	return nil
}

// enterImpl pushes the impl context. Malformed impl headers are skipped; the
// items inside then fall into the enclosing context.
func (v *Visitor) enterImpl(n *cst.Node) {
	node, err := traceable.FromImpl(n)
	if err != nil {
		v.logger().Warn("skipping impl block", "line", v.tracker.Line(), "error", err)
		return
	}
	v.push(node, n)
}

// enterModule distinguishes `mod name;` declarations, which are resolved to
// files, from inline `mod name { ... }` definitions, which become contexts.
func (v *Visitor) enterModule(n *cst.Node) error {
	switch last := n.LastChildOrToken().(type) {
	case *cst.Token:
		if last.Kind() == cst.KindSemicolon {
			return v.declareModule(n)
		}
	case *cst.Node:
		if last.Kind() == cst.KindItemList {
			node, err := traceable.FromModule(n)
			if err != nil {
				return fmt.Errorf("line %d: %w", v.tracker.Line(), err)
			}
			v.push(node, n)
		}
	}
	return nil
}

func (v *Visitor) declareModule(n *cst.Node) error {
	nameNode := n.ChildOfKind(cst.KindName)
	if nameNode == nil {
		v.logger().Warn("module declaration without name", "line", v.tracker.Line())
		return nil
	}
	name := nameNode.Text()

	var res resolver.Resolution
	if override, ok := resolver.PathAttribute(n); ok {
		res = resolver.ResolveOverride(v.filePath, override)
	} else {
		r, err := v.moduleResolver()
		if err != nil {
			return err
		}
		res, ok = r.Resolve(v.filePath, name)
		if !ok {
			v.logger().Warn("unresolved module declaration", "module", name, "line", v.tracker.Line())
			return nil
		}
	}

	switch {
	case v.isAncestor(res.Path):
		v.logger().Warn("module includes itself", "module", name, "target", res.Path)
	case v.opts.skip(res.Path):
		v.logger().Info("ignoring module file", "module", name, "target", res.Path)
	default:
		v.spawn(res.Path, v.defaultContext.Combine(res.Increment))
	}
	return nil
}

func (v *Visitor) moduleResolver() (*resolver.Resolver, error) {
	if v.resolver == nil {
		r, err := resolver.New(v.opts.cacheSize)
		if err != nil {
			return nil, err
		}
		v.resolver = r
	}
	return v.resolver, nil
}

func (v *Visitor) visitComment(t *cst.Token) {
	top := v.top()
	if top == nil {
		return
	}
	res := v.opts.scanner.Scan(t.Text())
	top.node.Refs = append(top.node.Refs, res.Refs...)
	top.node.Justifications = append(top.node.Justifications, res.Justifications...)
}

// visitKeyword corrects the location of the item opened by the keyword's
// parent. Keywords in other positions, such as fn pointer types, are ignored.
func (v *Visitor) visitKeyword(t *cst.Token, parent cst.Kind, kind traceable.Kind) {
	owner := t.Parent()
	if owner == nil || owner.Kind() != parent {
		return
	}

	line, column := v.tracker.Position(t.Range().Start)
	top := v.top()
	if top == nil || top.origin != owner || top.node.Kind != kind {
		v.logger().Warn("keyword outside of its item", "keyword", t.Text(), "line", line, "column", column)
		return
	}
	top.node.Location.SetPosition(line, column)
}
