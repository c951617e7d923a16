// Package lobster flattens traceable trees into LOBSTER interchange records
// and writes the interchange document.
package lobster

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/NewTec-GmbH/lobster-rust/internal/traceable"
)

const (
	// Generator names this tool in the document header.
	Generator = "lobster-rust"
	// Schema is the LOBSTER schema of the document.
	Schema = "lobster-imp-trace"
	// Version is the schema version.
	Version = 3

	// Language is the value of every record's language field.
	Language = "Rust"
	// TagPrefix starts every record tag.
	TagPrefix = "rust "
)

// Location is the file location of a record.
type Location struct {
	Kind   string `json:"kind"`
	File   string `json:"file"`
	Line   *int   `json:"line"`
	Column *int   `json:"column"`
}

// Record is one traced item. Field order matches the interchange format.
type Record struct {
	Tag        string   `json:"tag"`
	Name       string   `json:"name"`
	Location   Location `json:"location"`
	Messages   []string `json:"messages"`
	JustUp     []string `json:"just_up"`
	JustDown   []string `json:"just_down"`
	JustGlobal []string `json:"just_global"`
	Refs       []string `json:"refs"`
	Language   string   `json:"language"`
	Kind       string   `json:"kind"`
}

// Document is the interchange envelope.
type Document struct {
	Data      []Record `json:"data"`
	Generator string   `json:"generator"`
	Schema    string   `json:"schema"`
	Version   int      `json:"version"`
}

// Options tune flattening.
type Options struct {
	// OnlyTagged drops records that carry neither refs nor justifications.
	OnlyTagged bool
}

// Flatten converts root nodes to records in tree order.
//
// Source and Context nodes contribute their children's records. Function and
// Struct nodes contribute one record each. Enum and Trait subtrees are skipped.
func Flatten(roots []*traceable.Node, opts Options) []Record {
	records := []Record{}
	for _, root := range roots {
		records = flatten(records, root, opts)
	}
	return records
}

func flatten(records []Record, n *traceable.Node, opts Options) []Record {
	switch n.Kind {
	case traceable.KindSource, traceable.KindContext:
		for _, child := range n.Children {
			records = flatten(records, child, opts)
		}
	case traceable.KindFunction, traceable.KindStruct:
		if opts.OnlyTagged && len(n.Refs) == 0 && len(n.Justifications) == 0 {
			return records
		}
		records = append(records, NewRecord(n))
	}
	return records
}

// NewRecord converts a single node.
func NewRecord(n *traceable.Node) Record {
	return Record{
		Tag:  TagPrefix + n.Name,
		Name: n.Name,
		Location: Location{
			Kind:   "file",
			File:   n.Location.Filename,
			Line:   n.Location.Line,
			Column: n.Location.Column,
		},
		Messages:   []string{},
		JustUp:     nonNil(n.Justifications),
		JustDown:   []string{},
		JustGlobal: []string{},
		Refs:       nonNil(n.Refs),
		Language:   Language,
		Kind:       n.Kind.String(),
	}
}

func nonNil(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// NewDocument wraps records in the interchange envelope.
func NewDocument(records []Record) *Document {
	if records == nil {
		records = []Record{}
	}
	return &Document{
		Data:      records,
		Generator: Generator,
		Schema:    Schema,
		Version:   Version,
	}
}

// Write encodes doc as JSON indented by four spaces.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode interchange document: %w", err)
	}
	return nil
}
