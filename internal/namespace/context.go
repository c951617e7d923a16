// Package namespace provides the dotted-path value used to build qualified
// names for traced items.
package namespace

import "strings"

// Context is either Empty or a non-empty ordered list of path segments.
// The zero value is Empty. Values are immutable once built.
type Context struct {
	segments []string
}

// Empty is the identity element of Combine.
var Empty = Context{}

// FromString splits a dotted path into a Context. The empty string yields Empty.
func FromString(s string) Context {
	if s == "" {
		return Empty
	}
	return Context{segments: strings.Split(s, ".")}
}

// FromSegments builds a Context from already split segments.
func FromSegments(segments ...string) Context {
	if len(segments) == 0 {
		return Empty
	}
	return Context{segments: append([]string(nil), segments...)}
}

// IsEmpty reports whether c is Empty.
func (c Context) IsEmpty() bool {
	return len(c.segments) == 0
}

// Segments returns a copy of the path segments.
func (c Context) Segments() []string {
	return append([]string(nil), c.segments...)
}

// String joins the segments with dots. Empty renders as "".
func (c Context) String() string {
	return strings.Join(c.segments, ".")
}

// Combine concatenates c and other. Neither operand is modified.
func (c Context) Combine(other Context) Context {
	switch {
	case c.IsEmpty():
		return other
	case other.IsEmpty():
		return c
	}
	joined := make([]string, 0, len(c.segments)+len(other.segments))
	joined = append(joined, c.segments...)
	joined = append(joined, other.segments...)
	return Context{segments: joined}
}

// Append combines c with the Context parsed from s.
func (c Context) Append(s string) Context {
	return c.Combine(FromString(s))
}

// Equal reports whether both contexts hold the same segments.
func (c Context) Equal(other Context) bool {
	if len(c.segments) != len(other.segments) {
		return false
	}
	for i := range c.segments {
		if c.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Sum folds contexts left to right starting from Empty.
func Sum(contexts ...Context) Context {
	acc := Empty
	for _, c := range contexts {
		acc = acc.Combine(c)
	}
	return acc
}
