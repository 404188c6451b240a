package ir

import "fmt"

// WarningCode classifies non-fatal findings.
type WarningCode string

const (
	DuplicateChild     WarningCode = "DUPLICATE_CHILD"
	DuplicatePrototype WarningCode = "DUPLICATE_PROTOTYPE"
)

// Warning is a non-fatal finding of the parser or loader. Line and Col
// are 1-based; zero means the position is unknown.
type Warning struct {
	Code WarningCode
	Msg  string
	Tag  string
	Line int
	Col  int
}

func (w Warning) String() string {
	if w.Line == 0 {
		return fmt.Sprintf("%s: %s", w.Code, w.Msg)
	}
	return fmt.Sprintf("%s: %s at line %d, col %d", w.Code, w.Msg, w.Line, w.Col)
}

// Document is the result of parsing a knot text: its top-level nodes in
// order, elements and optionally comments, and the warnings found.
type Document struct {
	Nodes    []*Node
	Warnings []Warning
}

// Elements returns the top-level nodes that are not comments.
func (d *Document) Elements() []*Node {
	res := make([]*Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Type != CommentType {
			res = append(res, n)
		}
	}
	return res
}

func (d *Document) Clone() *Document {
	res := &Document{
		Nodes:    make([]*Node, len(d.Nodes)),
		Warnings: append([]Warning(nil), d.Warnings...),
	}
	for i, n := range d.Nodes {
		res.Nodes[i] = n.Clone()
	}
	return res
}

// AsList returns a list node sharing the document's top-level nodes. It is
// how paths address documents: ::0 is the first top-level node.
func (d *Document) AsList() *Node {
	return &Node{Type: ListType, Values: d.Nodes}
}
