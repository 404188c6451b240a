package ir

import (
	"github.com/knot-format/go-knot/ir/npath"
)

// location is where a search found a node: the container holding it, its
// index there, and the concrete path from the search root to it. parent
// is nil when the node is the search root itself.
type location struct {
	node   *Node
	parent *Node
	index  int
	rel    npath.Path
}

// findUnique searches y in depth-first pre-order for the first element
// whose metadata id is id. The search root is visited first, then for an
// element its body before its extend children, and for lists, maps and
// extend blocks their values in order.
func findUnique(y *Node, id string) *location {
	if hasID(y, id) {
		return &location{node: y}
	}
	return findIn(y, id, nil)
}

// FindUnique returns the first element under y whose metadata id is id,
// or nil.
func FindUnique(y *Node, id string) *Node {
	loc := findUnique(y, id)
	if loc == nil {
		return nil
	}
	return loc.node
}

func hasID(y *Node, id string) bool {
	got, ok := y.ID()
	return ok && got == id
}

func findIn(y *Node, id string, rel npath.Path) *location {
	visit := func(parent *Node, i int, seg ...npath.Segment) *location {
		c := parent.Values[i]
		crel := rel.Append(seg...)
		if hasID(c, id) {
			return &location{node: c, parent: parent, index: i, rel: crel}
		}
		return findIn(c, id, crel)
	}
	switch y.Type {
	case ElementType:
		if y.Body != nil {
			for i := range y.Body.Values {
				if loc := visit(y.Body, i, npath.Property("body"), npath.Index(i)); loc != nil {
					return loc
				}
			}
		}
		if y.Extend != nil {
			for i, tag := range y.Extend.Keys {
				if loc := visit(y.Extend, i, npath.Property("extend"), npath.Key(tag)); loc != nil {
					return loc
				}
			}
		}
	case ListType:
		for i := range y.Values {
			if loc := visit(y, i, npath.Index(i)); loc != nil {
				return loc
			}
		}
	case MapType, ExtendType:
		for i, k := range y.Keys {
			if loc := visit(y, i, npath.Key(k)); loc != nil {
				return loc
			}
		}
	}
	return nil
}

// Walk calls fn on y and every node below it in depth-first pre-order,
// with the concrete path from y. Element sections are visited in the
// order metadata, attributes, body, extend. If fn returns false the
// children of that node are skipped.
func Walk(y *Node, fn func(p npath.Path, n *Node) bool) {
	walk(y, nil, fn)
}

func walk(y *Node, p npath.Path, fn func(npath.Path, *Node) bool) {
	if !fn(p, y) {
		return
	}
	switch y.Type {
	case ElementType, TextType:
		for _, s := range []struct {
			name string
			n    *Node
		}{
			{"metadata", y.Metadata},
			{"attributes", y.Attributes},
			{"body", y.Body},
			{"extend", y.Extend},
		} {
			if s.n != nil {
				walk(s.n, p.Append(npath.Property(s.name)), fn)
			}
		}
	case ListType:
		for i, v := range y.Values {
			walk(v, p.Append(npath.Index(i)), fn)
		}
	case MapType, ExtendType:
		for i, k := range y.Keys {
			walk(y.Values[i], p.Append(npath.Key(k)), fn)
		}
	}
}
