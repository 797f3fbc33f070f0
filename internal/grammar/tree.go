package grammar

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Span is a half-open byte range [Start, End) into Tree.Source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Node is one rule match in the generic parse tree.
type Node struct {
	Rule     Rule
	Span     Span
	Children []*Node
}

// Child returns the first direct child produced by rule r, or nil.
func (n *Node) Child(r Rule) *Node {
	for _, c := range n.Children {
		if c.Rule == r {
			return c
		}
	}
	return nil
}

// Tree is the result of matching a document. Spans in every node refer to Source.
type Tree struct {
	Source string
	Root   *Node
}

// Text returns the source text matched by n.
func (t *Tree) Text(n *Node) string {
	if n == nil {
		return ""
	}
	return t.Source[n.Span.Start:n.Span.End]
}

// Walk calls fn for n and its descendants in document order. Returning false
// from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Format writes an indented outline of the tree, one node per line. Leaves
// include the quoted text they matched.
func (t *Tree) Format(w io.Writer) error {
	var err error
	var write func(n *Node, depth int)
	write = func(n *Node, depth int) {
		if err != nil || n == nil {
			return
		}
		line := fmt.Sprintf("%s%s [%d,%d)", strings.Repeat("  ", depth), n.Rule, n.Span.Start, n.Span.End)
		if len(n.Children) == 0 && n.Rule != RuleDocument {
			line += " " + strconv.Quote(t.Text(n))
		}
		_, err = io.WriteString(w, line+"\n")
		for _, c := range n.Children {
			write(c, depth+1)
		}
	}
	write(t.Root, 0)
	return err
}
