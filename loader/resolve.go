package loader

import (
	"fmt"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/token"
)

type protoKey struct {
	tag  string
	name string
}

type protoState int

const (
	unresolved protoState = iota
	resolving
	resolved
)

type protoEntry struct {
	node     *ir.Node
	state    protoState
	resolved *ir.Node
	imported bool
}

// resolver resolves the documents of one batch against one prototype
// namespace.
type resolver struct {
	protos map[protoKey]*protoEntry
	// order in which local prototypes were found, for exports
	order []protoKey
}

func newResolver(imported Exports) *resolver {
	r := &resolver{protos: map[protoKey]*protoEntry{}}
	for tag, byName := range imported {
		for name, n := range byName {
			r.protos[protoKey{tag, name}] = &protoEntry{
				node:     n,
				state:    resolved,
				resolved: n,
				imported: true,
			}
		}
	}
	return r
}

// collect indexes the prototypes of doc, appending warnings to w.
// positions, if not nil, gives source positions for warnings.
func (r *resolver) collect(doc *ir.Document, positions map[*ir.Node]*token.Pos, w *[]ir.Warning) {
	var visit func(n *ir.Node, inPrefabs bool)
	visit = func(n *ir.Node, inPrefabs bool) {
		if !n.Type.IsElement() {
			return
		}
		if inPrefabs || isExported(n) {
			r.add(n, positions, w)
		}
		children := inPrefabs || n.Tag == PrefabsTag
		for _, c := range []*ir.Node{n.Body, n.Extend} {
			if c == nil {
				continue
			}
			for _, v := range c.Values {
				visit(v, children)
			}
		}
	}
	for _, n := range doc.Nodes {
		visit(n, false)
	}
}

func (r *resolver) add(n *ir.Node, positions map[*ir.Node]*token.Pos, warnings *[]ir.Warning) {
	name, ok := protoName(n)
	if !ok {
		return
	}
	k := protoKey{n.Tag, name}
	if e := r.protos[k]; e != nil && !e.imported {
		w := ir.Warning{
			Code: ir.DuplicatePrototype,
			Tag:  n.Tag,
			Msg:  fmt.Sprintf("prototype %s %q defined again, the later definition wins", n.Tag, name),
		}
		if pos := positions[n]; pos != nil {
			w.Line, w.Col = pos.LineCol()
		}
		*warnings = append(*warnings, w)
	} else {
		r.order = append(r.order, k)
	}
	if debug.Load() {
		debug.Logf("prototype %s %q\n", n.Tag, name)
	}
	r.protos[k] = &protoEntry{node: n}
}

// proto returns a fresh copy of the resolved prototype (tag, name).
func (r *resolver) proto(tag, name string) (*ir.Node, error) {
	e := r.protos[protoKey{tag, name}]
	if e == nil {
		return nil, &Error{Code: UnknownPrototype, Tag: tag, Name: name, Msg: "no such prototype"}
	}
	switch e.state {
	case resolving:
		return nil, &Error{Code: Cycle, Tag: tag, Name: name, Msg: "prototype inherits from itself"}
	case unresolved:
		e.state = resolving
		res, err := r.element(e.node)
		if err != nil {
			e.state = unresolved
			return nil, err
		}
		stripKeys(res, KeyRemove)
		e.resolved = res
		e.state = resolved
	}
	return e.resolved.Clone(), nil
}

// value returns a resolved copy of n.
func (r *resolver) value(n *ir.Node) (*ir.Node, error) {
	switch n.Type {
	case ir.ElementType, ir.TextType:
		return r.element(n)
	case ir.ListType, ir.ExtendType:
		res := &ir.Node{Type: n.Type}
		if n.Keys != nil {
			res.Keys = make([]string, 0, len(n.Keys))
		}
		res.Values = make([]*ir.Node, 0, len(n.Values))
		for i, v := range n.Values {
			rv, err := r.value(v)
			if err != nil {
				return nil, err
			}
			if n.Keys != nil {
				res.Keys = append(res.Keys, n.Keys[i])
			}
			res.Values = append(res.Values, rv)
		}
		return res, nil
	case ir.MapType:
		res := ir.NewMap()
		for i, k := range n.Keys {
			rv, err := r.value(n.Values[i])
			if err != nil {
				return nil, err
			}
			if rv.Type.IsElement() {
				stripKeys(rv, KeyRemove)
			}
			res.Put(k, rv)
		}
		return res, nil
	default:
		return n.Clone(), nil
	}
}

func (r *resolver) section(n *ir.Node) (*ir.Node, error) {
	if n == nil {
		return nil, nil
	}
	return r.value(n)
}

// element resolves an element: its children first, then its prototype.
// The result keeps a remove directive for the parent to act on.
func (r *resolver) element(n *ir.Node) (*ir.Node, error) {
	res := &ir.Node{
		Type:   n.Type,
		Tag:    n.Tag,
		Text:   n.Text,
		Marker: n.Marker,
	}
	var err error
	if res.Metadata, err = r.section(n.Metadata); err != nil {
		return nil, err
	}
	if res.Attributes, err = r.section(n.Attributes); err != nil {
		return nil, err
	}
	if res.Body, err = r.section(n.Body); err != nil {
		return nil, err
	}
	if res.Extend, err = r.section(n.Extend); err != nil {
		return nil, err
	}
	name, hasProto := n.MetaString(KeyProto)
	if et := n.MetaGet(KeyExtendType); et != nil {
		if et.Type != ir.StringType || et.String != Override {
			return nil, &Error{
				Code: UnsupportedExtendType,
				Tag:  n.Tag,
				Name: name,
				Msg:  fmt.Sprintf("extendType %s is not supported, only %q is", valueString(et), Override),
			}
		}
	}
	if hasProto {
		base, err := r.proto(n.Tag, name)
		if err != nil {
			if le, ok := err.(*Error); ok && le.Code == UnknownPrototype {
				le.Msg = fmt.Sprintf("<%s proto=%q> has no prototype", n.Tag, name)
			}
			return nil, err
		}
		if debug.Load() {
			debug.Logf("merging %s %q into %s\n", n.Tag, name, debug.Knot{Node: res})
		}
		res = merge(base, res)
	} else {
		if res.Body != nil {
			dropRemoved(res.Body)
		}
		if res.Extend != nil {
			dropRemoved(res.Extend)
		}
	}
	stripKeys(res, controlKeys...)
	return res, nil
}

func valueString(n *ir.Node) string {
	switch n.Type {
	case ir.StringType:
		return fmt.Sprintf("%q", n.String)
	default:
		return n.Type.String()
	}
}
