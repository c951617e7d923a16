package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for location:
// - A fresh tracker reports line 1 and the raw offset as column
// - Observe counts every newline and remembers the last one
// - Text without newlines leaves the state untouched
// - FileReference.SetPosition overrides the approximate position

func TestTracker_Initial(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	line, col := tr.Position(3)
	assert.Equal(t, 1, line)
	assert.Equal(t, 3, col)
}

func TestTracker_Observe(t *testing.T) {
	t.Parallel()

	// "fn a() {}\n\n    fn b() {}"
	tr := NewTracker()
	tr.Observe(9, "\n\n    ")
	assert.Equal(t, 3, tr.Line())

	line, col := tr.Position(15)
	assert.Equal(t, 3, line)
	assert.Equal(t, 5, col)

	tr.Observe(17, " ")
	assert.Equal(t, 3, tr.Line())
	_, col = tr.Position(18)
	assert.Equal(t, 8, col)
}

func TestFileReference_SetPosition(t *testing.T) {
	t.Parallel()

	ref := NewFileReference("src/main.rs", 4, 0)
	ref.SetPosition(5, 2)

	require.NotNil(t, ref.Line)
	require.NotNil(t, ref.Column)
	assert.Equal(t, 5, *ref.Line)
	assert.Equal(t, 2, *ref.Column)
	assert.Equal(t, "src/main.rs:5:2", ref.String())
	assert.Equal(t, "x.rs:?:?", FileReference{Filename: "x.rs"}.String())
}
