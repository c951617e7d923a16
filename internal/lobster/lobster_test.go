package lobster

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/NewTec-GmbH/lobster-rust/internal/location"
	"github.com/NewTec-GmbH/lobster-rust/internal/traceable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for lobster:
// - Source and Context nodes only contribute their children, in order
// - Function and Struct nodes contribute one record each
// - Trait and Enum subtrees contribute nothing
// - Records carry tag, location, refs and justifications in schema shape
// - Empty lists encode as [] and never as null
// - OnlyTagged drops records without refs or justifications
// - Write produces the envelope with four-space indentation

func item(name string, kind traceable.Kind, line int) *traceable.Node {
	return &traceable.Node{
		Name:     name,
		Kind:     kind,
		Location: location.NewFileReference("src/main.rs", line, 1),
	}
}

func sampleTree() *traceable.Node {
	root := &traceable.Node{Name: "main", Kind: traceable.KindSource}

	st := item("main.S", traceable.KindStruct, 1)
	st.Refs = []string{"req REQ.s"}

	impl := &traceable.Node{Name: "Impl", Kind: traceable.KindContext}
	method := item("main.S.m", traceable.KindFunction, 3)
	method.Justifications = []string{"trivial"}
	impl.AppendChild(method)

	tr := &traceable.Node{Name: "T", Kind: traceable.KindTrait}
	tr.AppendChild(item("main.t", traceable.KindFunction, 6))

	en := &traceable.Node{Name: "E", Kind: traceable.KindEnum}
	en.AppendChild(item("main.e", traceable.KindFunction, 8))

	root.AppendChild(st)
	root.AppendChild(impl)
	root.AppendChild(tr)
	root.AppendChild(en)
	root.AppendChild(item("main.free", traceable.KindFunction, 10))
	return root
}

func names(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestFlatten_Order(t *testing.T) {
	t.Parallel()

	records := Flatten([]*traceable.Node{sampleTree()}, Options{})
	assert.Equal(t, []string{"main.S", "main.S.m", "main.free"}, names(records))
}

func TestFlatten_MultipleRoots(t *testing.T) {
	t.Parallel()

	sub := &traceable.Node{Name: "sub", Kind: traceable.KindSource}
	sub.AppendChild(item("sub.gamma", traceable.KindFunction, 1))

	records := Flatten([]*traceable.Node{sampleTree(), sub}, Options{})
	assert.Equal(t, []string{"main.S", "main.S.m", "main.free", "sub.gamma"}, names(records))
}

func TestFlatten_Empty(t *testing.T) {
	t.Parallel()

	records := Flatten(nil, Options{})
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFlatten_OnlyTagged(t *testing.T) {
	t.Parallel()

	records := Flatten([]*traceable.Node{sampleTree()}, Options{OnlyTagged: true})
	assert.Equal(t, []string{"main.S", "main.S.m"}, names(records))
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	n := item("main.S.m", traceable.KindFunction, 3)
	n.Refs = []string{"req A"}
	n.Justifications = []string{"why"}

	r := NewRecord(n)
	assert.Equal(t, "rust main.S.m", r.Tag)
	assert.Equal(t, "main.S.m", r.Name)
	assert.Equal(t, "file", r.Location.Kind)
	assert.Equal(t, "src/main.rs", r.Location.File)
	require.NotNil(t, r.Location.Line)
	assert.Equal(t, 3, *r.Location.Line)
	assert.Equal(t, []string{"req A"}, r.Refs)
	assert.Equal(t, []string{"why"}, r.JustUp)
	assert.Equal(t, "Rust", r.Language)
	assert.Equal(t, "Function", r.Kind)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	records := Flatten([]*traceable.Node{sampleTree()}, Options{})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDocument(records)))

	out := buf.String()
	assert.Contains(t, out, "\n    \"data\": [\n")
	assert.Contains(t, out, `"messages": []`)
	assert.Contains(t, out, `"just_down": []`)
	assert.NotContains(t, out, "null")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "lobster-rust", decoded["generator"])
	assert.Equal(t, "lobster-imp-trace", decoded["schema"])
	assert.Equal(t, float64(3), decoded["version"])
	assert.Len(t, decoded["data"], 3)
}

func TestWrite_KeepsAngleBrackets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	doc := NewDocument([]Record{NewRecord(item("main.Wrapper<T>.get", traceable.KindFunction, 1))})
	require.NoError(t, Write(&buf, doc))
	assert.Contains(t, buf.String(), `"tag": "rust main.Wrapper<T>.get"`)
}

func TestWrite_MissingPosition(t *testing.T) {
	t.Parallel()

	n := &traceable.Node{Name: "main.f", Kind: traceable.KindFunction, Location: location.FileReference{Filename: "main.rs"}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, NewDocument([]Record{NewRecord(n)})))
	assert.Contains(t, buf.String(), `"line": null`)
}
