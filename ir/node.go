package ir

import (
	"maps"
	"slices"
)

// Node is a knot value. Type selects which fields are meaningful:
//
//   - NullType: none
//   - BoolType: Bool
//   - NumberType: Number
//   - StringType: String
//   - ListType: Values
//   - MapType: Keys and Values, Keys[i] naming Values[i]
//   - CommentType: Text
//   - ElementType: Tag, Metadata, Attributes, Body, Extend
//   - TextType: Tag, Metadata, Attributes, Text, Marker
//   - ExtendType: Keys is the order of the children, Values[i] is the
//     element tagged Keys[i]
//
// Metadata and Attributes are maps, Body is a list and Extend is an
// extend node. A nil Attributes, Body or Extend means the section is
// absent; a nil Metadata is the same as an empty one.
type Node struct {
	Type Type

	Tag        string
	Metadata   *Node
	Attributes *Node
	Body       *Node
	Extend     *Node
	Text       string
	Marker     string

	Keys   []string
	Values []*Node

	String string
	Bool   bool
	Number float64
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromNumber(f float64) *Node {
	return &Node{Type: NumberType, Number: f}
}

func FromInt(i int) *Node {
	return FromNumber(float64(i))
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Comment(text string) *Node {
	return &Node{Type: CommentType, Text: text}
}

// FromSlice makes a list holding vs.
func FromSlice(vs []*Node) *Node {
	return &Node{Type: ListType, Values: slices.Clone(vs)}
}

// NewList makes a list of its arguments.
func NewList(vs ...*Node) *Node {
	return FromSlice(vs)
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals makes a map with the entries of kvs in order. A repeated key
// replaces the earlier value in place.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewMap()
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

// FromMap makes a map with the entries of m in sorted key order.
func FromMap(m map[string]*Node) *Node {
	res := NewMap()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res.Put(k, m[k])
	}
	return res
}

func NewMap() *Node {
	return &Node{Type: MapType}
}

// NewElement makes a data element with empty metadata and no sections.
func NewElement(tag string) *Node {
	return &Node{Type: ElementType, Tag: tag, Metadata: NewMap()}
}

// NewText makes a text element.
func NewText(tag, marker, text string) *Node {
	return &Node{Type: TextType, Tag: tag, Metadata: NewMap(), Marker: marker, Text: text}
}

func NewExtend() *Node {
	return &Node{Type: ExtendType}
}

func (y *Node) WithMeta(key string, v *Node) *Node {
	y.Meta().Put(key, v)
	return y
}

func (y *Node) WithAttributes(attrs *Node) *Node {
	y.Attributes = attrs
	return y
}

func (y *Node) WithBody(vs ...*Node) *Node {
	y.Body = FromSlice(vs)
	return y
}

// WithExtend sets the extend block to hold children in order, applying
// the duplicate tag policy of ExtendPut.
func (y *Node) WithExtend(children ...*Node) *Node {
	y.Extend = NewExtend()
	for _, c := range children {
		y.Extend.ExtendPut(c)
	}
	return y
}

// Meta returns the metadata map of an element, creating it if needed.
func (y *Node) Meta() *Node {
	if y.Metadata == nil {
		y.Metadata = NewMap()
	}
	return y.Metadata
}

// MetaGet returns the metadata value for key, or nil.
func (y *Node) MetaGet(key string) *Node {
	if y.Metadata == nil {
		return nil
	}
	return y.Metadata.Get(key)
}

// MetaString returns a string metadata value. Numbers are not converted.
func (y *Node) MetaString(key string) (string, bool) {
	v := y.MetaGet(key)
	if v == nil || v.Type != StringType {
		return "", false
	}
	return v.String, true
}

// ID returns the metadata id of an element, if it is a string.
func (y *Node) ID() (string, bool) {
	if !y.Type.IsElement() {
		return "", false
	}
	return y.MetaString("id")
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

// CloneTo deep copies y into dst and returns dst.
func (y *Node) CloneTo(dst *Node) *Node {
	*dst = Node{
		Type:       y.Type,
		Tag:        y.Tag,
		Metadata:   y.Metadata.Clone(),
		Attributes: y.Attributes.Clone(),
		Body:       y.Body.Clone(),
		Extend:     y.Extend.Clone(),
		Text:       y.Text,
		Marker:     y.Marker,
		String:     y.String,
		Bool:       y.Bool,
		Number:     y.Number,
	}
	if y.Keys != nil {
		dst.Keys = slices.Clone(y.Keys)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// Sections returns the non-nil child containers of an element in
// canonical order: metadata, attributes, body, extend.
func (y *Node) Sections() []*Node {
	res := make([]*Node, 0, 4)
	for _, s := range []*Node{y.Metadata, y.Attributes, y.Body, y.Extend} {
		if s != nil {
			res = append(res, s)
		}
	}
	return res
}
