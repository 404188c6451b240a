package mutation

import (
	"fmt"
	"slices"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
)

// Diff returns the mutations which turn old into new when applied to a
// tree holding old at base. old and new must be of the same kind; a
// kind change below the roots becomes an update of the whole value.
//
// Lists are compared by position only: an item inserted at the front of
// a list shows up as an update of every following index plus an add at
// the end. Diff never produces TreeMove. The mutations hold copies, they
// never share nodes with old or new.
func Diff(old, new *ir.Node, base npath.Path) ([]Mutation, error) {
	if old == nil || new == nil {
		return nil, fmt.Errorf("%w: nil node", ErrMutation)
	}
	if ok, nk := old.Type.Kind(), new.Type.Kind(); ok != nk {
		return nil, fmt.Errorf("%w: cannot diff %s against %s", ErrKindMismatch, ok, nk)
	}
	d := &differ{}
	d.node(old, new, base, false)
	if debug.Diff() {
		debug.Logf("diff at %q gave %d mutations\n", base.String(), len(d.muts))
	}
	return d.muts, nil
}

// DiffDocuments diffs the top-level nodes of two documents as lists.
func DiffDocuments(old, new *ir.Document) ([]Mutation, error) {
	return Diff(old.AsList(), new.AsList(), nil)
}

type differ struct {
	muts []Mutation
}

func (d *differ) add(k Kind, p npath.Path, before, after *ir.Node) {
	d.muts = append(d.muts, Mutation{
		Kind:        k,
		Path:        p,
		ValueBefore: before.Clone(),
		ValueAfter:  after.Clone(),
	})
}

// update records a whole-value replacement. Values held by maps are
// object updates, everything else is a tree update.
func (d *differ) update(old, new *ir.Node, p npath.Path, inMap bool) {
	k := TreeUpdate
	if inMap {
		k = ObjectUpdate
	}
	d.add(k, p, old, new)
}

func (d *differ) node(old, new *ir.Node, p npath.Path, inMap bool) {
	if ir.Equal(old, new) {
		return
	}
	if old.Type.Kind() != new.Type.Kind() {
		d.update(old, new, p, inMap)
		return
	}
	switch old.Type.Kind() {
	case ir.LiteralKind:
		d.update(old, new, p, inMap)
	case ir.ListKind:
		d.list(old, new, p)
	case ir.MapKind:
		d.mapEntries(old, new, p)
	case ir.ExtendKind:
		d.extend(old, new, p)
	case ir.ElementKind:
		if old.Type != new.Type {
			d.update(old, new, p, inMap)
			return
		}
		d.element(old, new, p)
	}
}

func (d *differ) list(old, new *ir.Node, p npath.Path) {
	n := min(len(old.Values), len(new.Values))
	for i := range n {
		d.node(old.Values[i], new.Values[i], p.Append(npath.Index(i)), false)
	}
	for i := n; i < len(new.Values); i++ {
		d.add(TreeAdd, p.Append(npath.Index(i)), nil, new.Values[i])
	}
	// from the end so earlier indices stay valid
	for i := len(old.Values) - 1; i >= n; i-- {
		d.add(TreeDelete, p.Append(npath.Index(i)), old.Values[i], nil)
	}
}

func (d *differ) mapEntries(old, new *ir.Node, p npath.Path) {
	for i, k := range old.Keys {
		if !new.Has(k) {
			d.add(ObjectDelete, p.Append(npath.Key(k)), old.Values[i], nil)
		}
	}
	for i, k := range old.Keys {
		if nv := new.Get(k); nv != nil {
			d.node(old.Values[i], nv, p.Append(npath.Key(k)), true)
		}
	}
	for i, k := range new.Keys {
		if !old.Has(k) {
			d.add(ObjectAdd, p.Append(npath.Key(k)), nil, new.Values[i])
		}
	}
}

// extend diffs two extend blocks by tag, then fixes the order if
// deleting the old tags and appending the new ones does not give the
// order of new.
func (d *differ) extend(old, new *ir.Node, p npath.Path) {
	order := make([]string, 0, len(old.Keys)+len(new.Keys))
	for i, tag := range old.Keys {
		if !new.Has(tag) {
			d.add(TreeDelete, p.Append(npath.Key(tag)), old.Values[i], nil)
			continue
		}
		order = append(order, tag)
	}
	for i, tag := range old.Keys {
		if nv := new.Get(tag); nv != nil {
			d.node(old.Values[i], nv, p.Append(npath.Key(tag)), false)
		}
	}
	for i, tag := range new.Keys {
		if !old.Has(tag) {
			d.add(TreeAdd, p.Append(npath.Key(tag)), nil, new.Values[i])
			order = append(order, tag)
		}
	}
	if !slices.Equal(order, new.Keys) {
		before := &ir.Node{Keys: order}
		d.add(TreeUpdate, p.Append(npath.Property(ir.PropOrder)), before.OrderNode(), new.OrderNode())
	}
}

var emptyMap = ir.NewMap()

func metadata(y *ir.Node) *ir.Node {
	if y.Metadata == nil {
		return emptyMap
	}
	return y.Metadata
}

func (d *differ) element(old, new *ir.Node, p npath.Path) {
	prop := func(name string) npath.Path {
		return p.Append(npath.Property(name))
	}
	if old.Tag != new.Tag {
		d.add(TreeUpdate, prop(ir.PropTag), ir.FromString(old.Tag), ir.FromString(new.Tag))
	}
	d.mapEntries(metadata(old), metadata(new), prop(ir.PropMetadata))
	d.section(old.Attributes, new.Attributes, prop(ir.PropAttributes), ObjectAdd, ObjectDelete)
	if old.Type == ir.TextType {
		if old.Text != new.Text {
			d.add(TreeUpdate, prop(ir.PropText), ir.FromString(old.Text), ir.FromString(new.Text))
		}
		if old.Marker != new.Marker {
			d.add(TreeUpdate, prop(ir.PropTextMarker), ir.FromString(old.Marker), ir.FromString(new.Marker))
		}
		return
	}
	d.section(old.Body, new.Body, prop(ir.PropBody), TreeAdd, TreeDelete)
	d.section(old.Extend, new.Extend, prop(ir.PropExtend), TreeAdd, TreeDelete)
}

// section diffs an optional element section. A section that appears or
// disappears is added or deleted whole.
func (d *differ) section(old, new *ir.Node, p npath.Path, add, del Kind) {
	switch {
	case old == nil && new == nil:
	case old == nil:
		d.add(add, p, nil, new)
	case new == nil:
		d.add(del, p, old, nil)
	default:
		d.node(old, new, p, false)
	}
}
