package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/NewTec-GmbH/lobster-rust/internal/cst"
	"github.com/NewTec-GmbH/lobster-rust/internal/namespace"
	"github.com/NewTec-GmbH/lobster-rust/internal/traceable"
	"github.com/NewTec-GmbH/lobster-rust/internal/visitor"
)

// printer dumps the syntax tree with one line per element.
type printer struct {
	depth int
}

func (p *printer) Enter(n *cst.Node) error {
	fmt.Printf("%s%s (%s) %d..%d\n", strings.Repeat("  ", p.depth), n.Kind(), n.Raw(), n.Range().Start, n.Range().End)
	p.depth++
	return nil
}

func (p *printer) Exit(*cst.Node) error {
	p.depth--
	return nil
}

func (p *printer) Token(t *cst.Token) error {
	fmt.Printf("%s%s %q\n", strings.Repeat("  ", p.depth), t.Kind(), t.Text())
	return nil
}

func printNode(n *traceable.Node, depth int) {
	fmt.Printf("%s%s %s refs=%v just=%v\n", strings.Repeat("  ", depth), n.Kind, n.Name, n.Refs, n.Justifications)
	for _, c := range n.Children {
		printNode(c, depth+1)
	}
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <file.rs>", os.Args[0])
	}
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	root, err := cst.Parse(source)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("=== SYNTAX TREE ===")
	if err := cst.Walk(root, &printer{}); err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n=== TRACEABLE TREE ===")
	v := visitor.New(path, namespace.Empty)
	if err := v.Travel(root); err != nil {
		log.Fatal(err)
	}
	for _, n := range v.TraceableNodes() {
		printNode(n, 0)
	}
	for _, m := range v.Modules() {
		fmt.Printf("module file (not visited): %s\n", m.FilePath())
	}
}
