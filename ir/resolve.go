package ir

import (
	"slices"

	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/token"
)

// Properties of elements addressable with InstanceProperty segments.
const (
	PropTag        = "tag"
	PropMetadata   = "metadata"
	PropAttributes = "attributes"
	PropBody       = "body"
	PropExtend     = "extend"
	PropText       = "text"
	PropTextMarker = "textMarker"

	// PropOrder is the tag order of an extend block.
	PropOrder = "order"
)

// valueProps are properties that resolve to a fresh node rather than to
// part of the tree, so paths cannot continue below them.
var valueProps = []string{PropTag, PropText, PropTextMarker, PropOrder}

// SetMode selects how Set treats the last segment of a path.
type SetMode int

const (
	// Replace overwrites an existing entry.
	Replace SetMode = iota
	// Insert adds an entry: lists shift right, maps add or overwrite the
	// key, extend blocks add the tag.
	Insert
)

func (m SetMode) String() string {
	if m == Insert {
		return "insert"
	}
	return "replace"
}

type resolveOpts struct {
	nonStrict bool
}

type ResolveOption func(*resolveOpts)

// NonStrict makes Resolve return nil instead of an error when an id, key
// or index is missing. Type mismatches are still errors.
func NonStrict() ResolveOption {
	return func(o *resolveOpts) { o.nonStrict = true }
}

// Resolve returns the node at p under target. The result is part of the
// tree except for the value properties (tag, text, textMarker, order),
// which resolve to fresh nodes.
func Resolve(target *Node, p npath.Path, opts ...ResolveOption) (*Node, error) {
	o := &resolveOpts{}
	for _, opt := range opts {
		opt(o)
	}
	cur := target
	for i, seg := range p {
		next, err := step(cur, p, i)
		if err != nil {
			if o.nonStrict && missing(err) {
				return nil, nil
			}
			return nil, err
		}
		if seg.Type == npath.InstanceProperty && slices.Contains(valueProps, seg.Name) && i < len(p)-1 {
			if o.nonStrict {
				return nil, nil
			}
			return nil, pathErr(TypeMismatch, p, i+1, "%s is a value with no children", seg.Name)
		}
		cur = next
	}
	return cur, nil
}

func missing(err error) bool {
	pe, ok := err.(*PathError)
	return ok && (pe.Code == NotFound || pe.Code == OutOfBounds)
}

// step resolves segment i of p from cur.
func step(cur *Node, p npath.Path, i int) (*Node, error) {
	seg := p[i]
	switch seg.Type {
	case npath.UniqueName:
		loc := findUnique(cur, seg.Name)
		if loc == nil {
			return nil, pathErr(NotFound, p, i, "no element with id %q", seg.Name)
		}
		return loc.node, nil
	case npath.InstanceProperty:
		return getProperty(cur, p, i)
	case npath.MapKey:
		switch cur.Type {
		case MapType, ExtendType:
			v := cur.Get(seg.Name)
			if v == nil {
				return nil, pathErr(NotFound, p, i, "no key %q", seg.Name)
			}
			return v, nil
		default:
			return nil, pathErr(TypeMismatch, p, i, "key %q in a %s", seg.Name, cur.Type)
		}
	case npath.ListIndex:
		switch cur.Type {
		case ListType, ExtendType:
			if seg.Index < 0 || seg.Index >= len(cur.Values) {
				return nil, pathErr(OutOfBounds, p, i, "index %d out of range [0, %d)", seg.Index, len(cur.Values))
			}
			return cur.Values[seg.Index], nil
		default:
			return nil, pathErr(TypeMismatch, p, i, "index %d in a %s", seg.Index, cur.Type)
		}
	default:
		return nil, pathErr(Invalid, p, i, "unknown segment type %s", seg.Type)
	}
}

func getProperty(cur *Node, p npath.Path, i int) (*Node, error) {
	name := p[i].Name
	if cur.Type == ExtendType {
		if name != PropOrder {
			return nil, pathErr(Invalid, p, i, "extend blocks have no property %q", name)
		}
		return cur.OrderNode(), nil
	}
	if !cur.Type.IsElement() {
		return nil, pathErr(TypeMismatch, p, i, "property %q of a %s", name, cur.Type)
	}
	section := func(n *Node) (*Node, error) {
		if n == nil {
			return nil, pathErr(NotFound, p, i, "element %q has no %s", cur.Tag, name)
		}
		return n, nil
	}
	switch name {
	case PropTag:
		return FromString(cur.Tag), nil
	case PropMetadata:
		return cur.Meta(), nil
	case PropAttributes:
		return section(cur.Attributes)
	case PropBody, PropExtend:
		if cur.Type == TextType {
			return nil, pathErr(TypeMismatch, p, i, "text element %q has no %s", cur.Tag, name)
		}
		if name == PropBody {
			return section(cur.Body)
		}
		return section(cur.Extend)
	case PropText, PropTextMarker:
		if cur.Type != TextType {
			return nil, pathErr(TypeMismatch, p, i, "data element %q has no %s", cur.Tag, name)
		}
		if name == PropText {
			return FromString(cur.Text), nil
		}
		return FromString(cur.Marker), nil
	default:
		return nil, pathErr(Invalid, p, i, "elements have no property %q", name)
	}
}

// walkParent resolves all but the last segment of p for a mutation. With
// create set, missing map keys and element sections are created to suit
// the segment that follows them.
func walkParent(target *Node, p npath.Path, create bool) (*Node, error) {
	cur := target
	for i := 0; i < len(p)-1; i++ {
		seg := p[i]
		if seg.Type == npath.InstanceProperty && slices.Contains(valueProps, seg.Name) {
			return nil, pathErr(TypeMismatch, p, i+1, "%s is a value with no children", seg.Name)
		}
		next, err := step(cur, p, i)
		if err == nil {
			cur = next
			continue
		}
		pe, ok := err.(*PathError)
		if !create || !ok || pe.Code != NotFound {
			return nil, err
		}
		next, err = createAt(cur, p, i)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// createAt creates the missing container addressed by segment i of p,
// shaped for segment i+1.
func createAt(cur *Node, p npath.Path, i int) (*Node, error) {
	seg, next := p[i], p[i+1]
	container := func() (*Node, error) {
		switch next.Type {
		case npath.MapKey:
			return NewMap(), nil
		case npath.ListIndex:
			return NewList(), nil
		default:
			return nil, pathErr(NotFound, p, i, "cannot create a container for %s", next)
		}
	}
	switch seg.Type {
	case npath.MapKey:
		if cur.Type != MapType {
			return nil, pathErr(NotFound, p, i, "no key %q", seg.Name)
		}
		c, err := container()
		if err != nil {
			return nil, err
		}
		cur.Put(seg.Name, c)
		return c, nil
	case npath.InstanceProperty:
		switch seg.Name {
		case PropAttributes:
			cur.Attributes = NewMap()
			return cur.Attributes, nil
		case PropBody:
			cur.Body = NewList()
			return cur.Body, nil
		case PropExtend:
			cur.Extend = NewExtend()
			return cur.Extend, nil
		}
	}
	return nil, pathErr(NotFound, p, i, "cannot create %s", seg)
}

// Set stores value at p under target, creating missing intermediate maps,
// lists and element sections. value becomes part of the tree. An empty
// path overwrites target itself.
func Set(target *Node, p npath.Path, value *Node, mode SetMode) error {
	if value == nil {
		return pathErr(Invalid, p, max(len(p)-1, 0), "nil value")
	}
	if len(p) == 0 {
		*target = *value
		return nil
	}
	cur, err := walkParent(target, p, true)
	if err != nil {
		return err
	}
	i := len(p) - 1
	seg := p[i]
	switch seg.Type {
	case npath.UniqueName:
		loc := findUnique(cur, seg.Name)
		if loc == nil {
			return pathErr(NotFound, p, i, "no element with id %q", seg.Name)
		}
		if loc.parent == nil {
			*loc.node = *value
			return nil
		}
		return replaceIn(loc.parent, loc.index, value, p, i)
	case npath.InstanceProperty:
		return setProperty(cur, value, p, i)
	case npath.MapKey:
		switch cur.Type {
		case MapType:
			if mode == Replace && !cur.Has(seg.Name) {
				return pathErr(NotFound, p, i, "no key %q to replace", seg.Name)
			}
			cur.Put(seg.Name, value)
			return nil
		case ExtendType:
			if !value.Type.IsElement() {
				return pathErr(TypeMismatch, p, i, "extend children must be elements, not %s", value.Type)
			}
			if value.Tag != seg.Name {
				return pathErr(Invalid, p, i, "element tagged %q stored under tag %q", value.Tag, seg.Name)
			}
			if mode == Insert {
				cur.ExtendPut(value)
				return nil
			}
			j := cur.Index(seg.Name)
			if j == -1 {
				return pathErr(NotFound, p, i, "no tag %q to replace", seg.Name)
			}
			cur.Values[j] = value
			return nil
		default:
			return pathErr(TypeMismatch, p, i, "key %q in a %s", seg.Name, cur.Type)
		}
	case npath.ListIndex:
		n := seg.Index
		switch cur.Type {
		case ListType:
			if mode == Insert {
				if n < 0 || n > len(cur.Values) {
					return pathErr(OutOfBounds, p, i, "insert at %d out of range [0, %d]", n, len(cur.Values))
				}
				cur.InsertAt(n, value)
				return nil
			}
			return replaceIn(cur, n, value, p, i)
		case ExtendType:
			if !value.Type.IsElement() {
				return pathErr(TypeMismatch, p, i, "extend children must be elements, not %s", value.Type)
			}
			if mode == Insert {
				if err := cur.ExtendInsert(n, value); err != nil {
					return pathErr(OutOfBounds, p, i, "%s", err)
				}
				return nil
			}
			return replaceIn(cur, n, value, p, i)
		default:
			return pathErr(TypeMismatch, p, i, "index %d in a %s", n, cur.Type)
		}
	default:
		return pathErr(Invalid, p, i, "unknown segment type %s", seg.Type)
	}
}

// replaceIn overwrites item n of a list or extend container.
func replaceIn(c *Node, n int, value *Node, p npath.Path, i int) error {
	if n < 0 || n >= len(c.Values) {
		return pathErr(OutOfBounds, p, i, "index %d out of range [0, %d)", n, len(c.Values))
	}
	switch c.Type {
	case ExtendType:
		if !value.Type.IsElement() {
			return pathErr(TypeMismatch, p, i, "extend children must be elements, not %s", value.Type)
		}
		if err := c.ExtendReplaceAt(n, value); err != nil {
			return pathErr(Invalid, p, i, "%s", err)
		}
	default:
		c.Values[n] = value
	}
	return nil
}

func setProperty(cur *Node, value *Node, p npath.Path, i int) error {
	name := p[i].Name
	want := func(t Type) error {
		if value.Type != t {
			return pathErr(TypeMismatch, p, i, "%s must be a %s, not %s", name, t, value.Type)
		}
		return nil
	}
	if cur.Type == ExtendType {
		if name != PropOrder {
			return pathErr(Invalid, p, i, "extend blocks have no property %q", name)
		}
		order, err := OrderFromNode(value)
		if err != nil {
			return pathErr(TypeMismatch, p, i, "%s", err)
		}
		if err := cur.SetOrder(order); err != nil {
			return pathErr(Invalid, p, i, "%s", err)
		}
		return nil
	}
	if !cur.Type.IsElement() {
		return pathErr(TypeMismatch, p, i, "property %q of a %s", name, cur.Type)
	}
	switch name {
	case PropTag:
		if err := want(StringType); err != nil {
			return err
		}
		if !token.IsIdent(value.String) {
			return pathErr(Invalid, p, i, "tag %q is not an identifier", value.String)
		}
		cur.Tag = value.String
	case PropMetadata:
		if err := want(MapType); err != nil {
			return err
		}
		cur.Metadata = value
	case PropAttributes:
		if err := want(MapType); err != nil {
			return err
		}
		cur.Attributes = value
	case PropBody:
		if cur.Type == TextType {
			return pathErr(TypeMismatch, p, i, "text element %q cannot hold a body", cur.Tag)
		}
		if err := want(ListType); err != nil {
			return err
		}
		cur.Body = value
	case PropExtend:
		if cur.Type == TextType {
			return pathErr(TypeMismatch, p, i, "text element %q cannot hold an extend block", cur.Tag)
		}
		if err := want(ExtendType); err != nil {
			return err
		}
		cur.Extend = value
	case PropText:
		if err := want(StringType); err != nil {
			return err
		}
		if cur.Type == ElementType {
			if cur.Body != nil || cur.Extend != nil {
				return pathErr(TypeMismatch, p, i, "element %q has a body or extend block", cur.Tag)
			}
			cur.Type = TextType
		}
		cur.Text = value.String
	case PropTextMarker:
		if err := want(StringType); err != nil {
			return err
		}
		if cur.Type != TextType {
			return pathErr(TypeMismatch, p, i, "data element %q has no text marker", cur.Tag)
		}
		if value.String != "" && !token.IsIdent(value.String) {
			return pathErr(Invalid, p, i, "marker %q is not an identifier", value.String)
		}
		cur.Marker = value.String
	default:
		return pathErr(Invalid, p, i, "elements have no property %q", name)
	}
	return nil
}

// Delete removes the entry at p under target and returns it. List items
// and extend children after it move down one position. Deleting an
// element section removes it; deleting metadata empties it.
func Delete(target *Node, p npath.Path) (*Node, error) {
	if len(p) == 0 {
		return nil, pathErr(Invalid, p, 0, "cannot delete the root")
	}
	cur, err := walkParent(target, p, false)
	if err != nil {
		return nil, err
	}
	i := len(p) - 1
	seg := p[i]
	switch seg.Type {
	case npath.UniqueName:
		loc := findUnique(cur, seg.Name)
		if loc == nil {
			return nil, pathErr(NotFound, p, i, "no element with id %q", seg.Name)
		}
		if loc.parent == nil {
			return nil, pathErr(Invalid, p, i, "cannot delete the search root %q", seg.Name)
		}
		return loc.parent.RemoveAt(loc.index), nil
	case npath.InstanceProperty:
		return deleteProperty(cur, p, i)
	case npath.MapKey:
		switch cur.Type {
		case MapType, ExtendType:
			v := cur.Remove(seg.Name)
			if v == nil {
				return nil, pathErr(NotFound, p, i, "no key %q", seg.Name)
			}
			return v, nil
		default:
			return nil, pathErr(TypeMismatch, p, i, "key %q in a %s", seg.Name, cur.Type)
		}
	case npath.ListIndex:
		switch cur.Type {
		case ListType, ExtendType:
			if seg.Index < 0 || seg.Index >= len(cur.Values) {
				return nil, pathErr(OutOfBounds, p, i, "index %d out of range [0, %d)", seg.Index, len(cur.Values))
			}
			return cur.RemoveAt(seg.Index), nil
		default:
			return nil, pathErr(TypeMismatch, p, i, "index %d in a %s", seg.Index, cur.Type)
		}
	default:
		return nil, pathErr(Invalid, p, i, "unknown segment type %s", seg.Type)
	}
}

func deleteProperty(cur *Node, p npath.Path, i int) (*Node, error) {
	name := p[i].Name
	if !cur.Type.IsElement() {
		return nil, pathErr(TypeMismatch, p, i, "property %q of a %s", name, cur.Type)
	}
	old, err := getProperty(cur, p, i)
	if err != nil {
		return nil, err
	}
	switch name {
	case PropMetadata:
		cur.Metadata = NewMap()
	case PropAttributes:
		cur.Attributes = nil
	case PropBody:
		cur.Body = nil
	case PropExtend:
		cur.Extend = nil
	case PropText:
		cur.Text = ""
	case PropTextMarker:
		cur.Marker = ""
	default:
		return nil, pathErr(Invalid, p, i, "cannot delete %s", name)
	}
	return old, nil
}

// Concrete rewrites the UniqueName segments of p into the property, key
// and index segments that reach the same node from target.
func Concrete(target *Node, p npath.Path) (npath.Path, error) {
	var res npath.Path
	cur := target
	for i, seg := range p {
		if seg.Type == npath.UniqueName {
			loc := findUnique(cur, seg.Name)
			if loc == nil {
				return nil, pathErr(NotFound, p, i, "no element with id %q", seg.Name)
			}
			res = res.Append(loc.rel...)
			cur = loc.node
			continue
		}
		next, err := step(cur, p, i)
		if err != nil {
			return nil, err
		}
		res = res.Append(seg)
		cur = next
	}
	return res, nil
}

// Resolve resolves p against the document's top-level nodes as a list.
func (d *Document) Resolve(p npath.Path, opts ...ResolveOption) (*Node, error) {
	return Resolve(d.AsList(), p, opts...)
}

// Set is Set over the document's top-level nodes as a list.
func (d *Document) Set(p npath.Path, value *Node, mode SetMode) error {
	root := d.AsList()
	if err := Set(root, p, value, mode); err != nil {
		return err
	}
	if root.Type != ListType {
		return pathErr(TypeMismatch, p, 0, "a document is a list, not a %s", root.Type)
	}
	d.Nodes = root.Values
	return nil
}

// Delete is Delete over the document's top-level nodes as a list.
func (d *Document) Delete(p npath.Path) (*Node, error) {
	root := d.AsList()
	v, err := Delete(root, p)
	if err != nil {
		return nil, err
	}
	d.Nodes = root.Values
	return v, nil
}
