package cst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parse:
// - Token texts concatenate back to the exact source
// - Items expose Name children and their defining keyword tokens
// - Leading comments and attributes are attached to the following item
// - A blank line keeps a plain comment outside the item
// - Inner doc comments are never attached
// - Impl headers expose PathType children and the for keyword
// - Module declarations end in a semicolon, inline modules in an item list
// - Path attributes expose Meta/Path/Literal/String

const sample = `//! crate docs
use std::fmt;

/// Documented struct.
#[derive(Debug)]
pub struct Point {
    x: i32, /* trailing */
}

// lobster-trace: REQ.impl
impl fmt::Display for Point {
    fn fmt(&self, f: &mut fmt::Formatter) -> fmt::Result {
        write!(f, "{}", "multi
line")
    }
}

// detached

fn free(cb: fn(i32) -> i32) {}
`

func parse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := Parse([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func TestParse_Lossless(t *testing.T) {
	t.Parallel()

	root := parse(t, sample)

	var sb strings.Builder
	for _, tok := range root.Tokens() {
		sb.WriteString(tok.Text())
	}
	assert.Equal(t, sample, sb.String())
	assert.Equal(t, Range{Start: 0, End: len(sample)}, root.Range())
	assert.Equal(t, KindSourceFile, root.Kind())
}

func TestParse_TokensAreContiguous(t *testing.T) {
	t.Parallel()

	root := parse(t, sample)
	pos := 0
	for _, tok := range root.Tokens() {
		assert.Equal(t, pos, tok.Range().Start, "token %s %q", tok.Kind(), tok.Text())
		pos = tok.Range().End
	}
	assert.Equal(t, len(sample), pos)
}

func TestParse_Function(t *testing.T) {
	t.Parallel()

	root := parse(t, "fn alpha() {}\n")
	fn := root.ChildOfKind(KindFn)
	require.NotNil(t, fn)

	name := fn.ChildOfKind(KindName)
	require.NotNil(t, name)
	assert.Equal(t, "alpha", name.Text())

	kws := fn.TokensOfKind(KindFnKw)
	require.Len(t, kws, 1)
	assert.Equal(t, 0, kws[0].Range().Start)
	assert.Same(t, fn, kws[0].Parent())
}

func TestParse_CommentAttachedToItem(t *testing.T) {
	t.Parallel()

	root := parse(t, "// lobster-trace: REQ.alpha\nfn beta() {}\n")
	fn := root.ChildOfKind(KindFn)
	require.NotNil(t, fn)

	first, ok := fn.ChildrenWithTokens()[0].(*Token)
	require.True(t, ok)
	assert.Equal(t, KindComment, first.Kind())
	assert.Equal(t, "// lobster-trace: REQ.alpha", first.Text())
	assert.Equal(t, 0, fn.Range().Start)
}

func TestParse_BlankLineDetachesComment(t *testing.T) {
	t.Parallel()

	root := parse(t, "// note\n\nfn beta() {}\n")
	fn := root.ChildOfKind(KindFn)
	require.NotNil(t, fn)

	assert.Empty(t, fn.TokensOfKind(KindComment))
	assert.Len(t, root.TokensOfKind(KindComment), 1)
}

func TestParse_OuterDocSurvivesBlankLine(t *testing.T) {
	t.Parallel()

	root := parse(t, "/// doc\n\nfn beta() {}\n")
	fn := root.ChildOfKind(KindFn)
	require.NotNil(t, fn)
	assert.Len(t, fn.TokensOfKind(KindComment), 1)
}

func TestParse_InnerDocNotAttached(t *testing.T) {
	t.Parallel()

	root := parse(t, "//! crate\nfn beta() {}\n")
	fn := root.ChildOfKind(KindFn)
	require.NotNil(t, fn)
	assert.Empty(t, fn.TokensOfKind(KindComment))
}

func TestParse_AttributesAndCommentsAttached(t *testing.T) {
	t.Parallel()

	root := parse(t, sample)
	st := root.ChildOfKind(KindStruct)
	require.NotNil(t, st)

	assert.Len(t, st.ChildrenOfKind(KindAttr), 1)
	assert.Len(t, st.TokensOfKind(KindComment), 1)
	assert.Len(t, st.TokensOfKind(KindStructKw), 1)
	assert.Equal(t, "Point", st.ChildOfKind(KindName).Text())
}

func TestParse_ImplHeader(t *testing.T) {
	t.Parallel()

	root := parse(t, sample)
	impl := root.ChildOfKind(KindImpl)
	require.NotNil(t, impl)

	paths := impl.ChildrenOfKind(KindPathType)
	require.Len(t, paths, 2)
	assert.Equal(t, "fmt::Display", paths[0].Text())
	assert.Equal(t, "Point", paths[1].Text())
	assert.Len(t, impl.TokensOfKind(KindForKw), 1)
	assert.Len(t, impl.TokensOfKind(KindComment), 1)
	assert.NotNil(t, impl.ChildOfKind(KindItemList))
}

func TestParse_InherentImpl(t *testing.T) {
	t.Parallel()

	root := parse(t, "impl<T> Wrapper<T> { fn get(&self) {} }\n")
	impl := root.ChildOfKind(KindImpl)
	require.NotNil(t, impl)

	paths := impl.ChildrenOfKind(KindPathType)
	require.Len(t, paths, 1)
	assert.Equal(t, "Wrapper<T>", paths[0].Text())
	assert.Empty(t, impl.TokensOfKind(KindForKw))
}

func TestParse_Modules(t *testing.T) {
	t.Parallel()

	root := parse(t, "mod decl;\nmod inline { fn f() {} }\n")
	mods := root.ChildrenOfKind(KindModule)
	require.Len(t, mods, 2)

	last, ok := mods[0].LastChildOrToken().(*Token)
	require.True(t, ok)
	assert.Equal(t, KindSemicolon, last.Kind())

	body, ok := mods[1].LastChildOrToken().(*Node)
	require.True(t, ok)
	assert.Equal(t, KindItemList, body.Kind())
	assert.Equal(t, "inline", mods[1].ChildOfKind(KindName).Text())
}

func TestParse_PathAttribute(t *testing.T) {
	t.Parallel()

	root := parse(t, "#[path = \"other/file.rs\"]\nmod renamed;\n")
	mod := root.ChildOfKind(KindModule)
	require.NotNil(t, mod)

	attr := mod.ChildOfKind(KindAttr)
	require.NotNil(t, attr)
	meta := attr.ChildOfKind(KindMeta)
	require.NotNil(t, meta)
	path := meta.ChildOfKind(KindPath)
	require.NotNil(t, path)
	assert.Equal(t, "path", path.Text())

	lit := meta.ChildOfKind(KindLiteral)
	require.NotNil(t, lit)
	strs := lit.TokensOfKind(KindString)
	require.Len(t, strs, 1)
	assert.Equal(t, `"other/file.rs"`, strs[0].Text())
}

func TestSiblings(t *testing.T) {
	t.Parallel()

	root := parse(t, "fn a() {}\nfn b() {}\n")
	fns := root.ChildrenOfKind(KindFn)
	require.Len(t, fns, 2)

	next := NextSibling(fns[0])
	require.NotNil(t, next)
	assert.Equal(t, KindWhitespace, next.Kind())
	assert.Equal(t, fns[1], NextSibling(next))
	assert.Equal(t, next, PrevSibling(fns[1]))
	assert.Nil(t, PrevSibling(root))
}

type recorder struct {
	events []string
}

func (r *recorder) Enter(n *Node) error {
	r.events = append(r.events, "enter "+n.Kind().String())
	return nil
}

func (r *recorder) Exit(n *Node) error {
	r.events = append(r.events, "exit "+n.Kind().String())
	return nil
}

func (r *recorder) Token(t *Token) error {
	r.events = append(r.events, t.Kind().String())
	return nil
}

func TestWalk_Order(t *testing.T) {
	t.Parallel()

	root := parse(t, "struct S;")
	r := &recorder{}
	require.NoError(t, Walk(root, r))

	assert.Equal(t, []string{
		"enter SOURCE_FILE",
		"enter STRUCT",
		"STRUCT_KW",
		"WHITESPACE",
		"enter NAME",
		"IDENT",
		"exit NAME",
		"SEMICOLON",
		"exit STRUCT",
		"exit SOURCE_FILE",
	}, r.events)
}
