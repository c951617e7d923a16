// Package location tracks line and column information for byte offsets
// while a file is being traversed in document order.
package location

import (
	"fmt"
	"strings"
)

// FileReference points at a position in a source file. Line and Column are
// optional and may be corrected after the reference was created.
type FileReference struct {
	Filename string
	Line     *int
	Column   *int
}

// NewFileReference creates a reference with a known position.
func NewFileReference(filename string, line, column int) FileReference {
	return FileReference{Filename: filename, Line: &line, Column: &column}
}

// SetPosition replaces line and column.
func (r *FileReference) SetPosition(line, column int) {
	r.Line = &line
	r.Column = &column
}

func (r FileReference) String() string {
	return fmt.Sprintf("%s:%s:%s", r.Filename, optional(r.Line), optional(r.Column))
}

func optional(v *int) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprint(*v)
}

// Tracker reconstructs (line, column) from byte offsets by accounting for
// line breaks in the tokens observed so far.
//
// Position is only correct once every line-breaking token preceding the
// offset has been observed.
type Tracker struct {
	currentLine   int
	lastLinebreak int
}

// NewTracker returns a tracker positioned at the start of a file.
func NewTracker() *Tracker {
	return &Tracker{currentLine: 1}
}

// Observe accounts for the line breaks in a token starting at byte offset start.
func (t *Tracker) Observe(start int, text string) {
	breaks := strings.Count(text, "\n")
	if breaks == 0 {
		return
	}
	t.currentLine += breaks
	t.lastLinebreak = start + strings.LastIndexByte(text, '\n')
}

// Line returns the line of the most recently observed position.
func (t *Tracker) Line() int {
	return t.currentLine
}

// Position returns line and column for a byte offset.
func (t *Tracker) Position(offset int) (line, column int) {
	return t.currentLine, offset - t.lastLinebreak
}
