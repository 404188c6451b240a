package loader

import (
	"github.com/knot-format/go-knot/ir"
)

// merge overrides base with child. Both are resolved trees owned by the
// caller; the result reuses their nodes.
func merge(base, child *ir.Node) *ir.Node {
	res := base
	res.Metadata = mergeMaps(base.Metadata, child.Metadata)
	res.Attributes = mergeMaps(base.Attributes, child.Attributes)
	switch {
	case child.Type == ir.TextType:
		res.Type = ir.TextType
		res.Text = child.Text
		res.Marker = child.Marker
		res.Body = nil
		res.Extend = nil
		return res
	case base.Type == ir.TextType && (child.Body != nil || child.Extend != nil):
		res.Type = ir.ElementType
		res.Text = ""
		res.Marker = ""
	}
	if res.Type == ir.TextType {
		return res
	}
	res.Body = mergeBody(base.Body, child.Body)
	res.Extend = mergeExtend(base.Extend, child.Extend)
	return res
}

// mergeMaps merges b into a, b winning. Maps present on both sides are
// merged recursively.
func mergeMaps(a, b *ir.Node) *ir.Node {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	for i, k := range b.Keys {
		bv := b.Values[i]
		if av := a.Get(k); av != nil && av.Type == ir.MapType && bv.Type == ir.MapType {
			a.Put(k, mergeMaps(av, bv))
			continue
		}
		a.Put(k, bv)
	}
	return a
}

// mergeBody merges the body of a child into the body of its prototype.
// A child element whose id matches a base element replaces it in place,
// a removal directive deletes the base element with its target id, and
// anything else is appended.
func mergeBody(base, child *ir.Node) *ir.Node {
	switch {
	case child == nil:
		return base
	case base == nil:
		return dropRemoved(child)
	}
	for _, v := range child.Values {
		if isRemove(v) {
			if id, ok := removeTarget(v); ok {
				if i := indexByID(base, id); i != -1 {
					base.RemoveAt(i)
				}
			}
			continue
		}
		if id, ok := v.ID(); ok {
			if i := indexByID(base, id); i != -1 {
				base.Values[i] = v
				continue
			}
		}
		base.Values = append(base.Values, v)
	}
	return base
}

func indexByID(list *ir.Node, id string) int {
	for i, v := range list.Values {
		if got, ok := v.ID(); ok && got == id {
			return i
		}
	}
	return -1
}

// mergeExtend merges extend blocks by tag: a child replaces the base
// child of its tag in place or is appended, and a removal directive
// deletes its tag.
func mergeExtend(base, child *ir.Node) *ir.Node {
	switch {
	case child == nil:
		return base
	case base == nil:
		return dropRemoved(child)
	}
	for i, tag := range child.Keys {
		v := child.Values[i]
		if isRemove(v) {
			base.Remove(tag)
			continue
		}
		if j := base.Index(tag); j != -1 {
			base.Values[j] = v
			continue
		}
		base.ExtendPut(v)
	}
	return base
}

// dropRemoved deletes removal directives from a list or extend block
// which has nothing to remove them from.
func dropRemoved(c *ir.Node) *ir.Node {
	for i := len(c.Values) - 1; i >= 0; i-- {
		if isRemove(c.Values[i]) {
			c.RemoveAt(i)
		}
	}
	return c
}
