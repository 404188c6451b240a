package ir

import (
	"cmp"
	"slices"
	"strings"
)

// Equal reports whether a and b are structurally equal. Map entries are
// compared regardless of order; list items and extend children are
// compared in order. A nil metadata map equals an empty one.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return a.Number == b.Number
	case StringType:
		return a.String == b.String
	case CommentType:
		return a.Text == b.Text
	case ListType:
		return valuesEqual(a.Values, b.Values)
	case MapType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, k := range a.Keys {
			bv := b.Get(k)
			if bv == nil || !Equal(a.Values[i], bv) {
				return false
			}
		}
		return true
	case ExtendType:
		return slices.Equal(a.Keys, b.Keys) && valuesEqual(a.Values, b.Values)
	case ElementType:
		return a.Tag == b.Tag &&
			metaEqual(a.Metadata, b.Metadata) &&
			Equal(a.Attributes, b.Attributes) &&
			Equal(a.Body, b.Body) &&
			Equal(a.Extend, b.Extend)
	case TextType:
		return a.Tag == b.Tag &&
			metaEqual(a.Metadata, b.Metadata) &&
			Equal(a.Attributes, b.Attributes) &&
			a.Text == b.Text &&
			a.Marker == b.Marker
	default:
		return false
	}
}

func valuesEqual(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func metaEqual(a, b *Node) bool {
	if a == nil {
		a = NewMap()
	}
	if b == nil {
		b = NewMap()
	}
	return Equal(a, b)
}

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Compare(a, b) == 0 exactly when Equal(a, b).
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.Type != b.Type {
		return cmp.Compare(a.Type, b.Type)
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberType:
		return cmp.Compare(a.Number, b.Number)
	case StringType:
		return strings.Compare(a.String, b.String)
	case CommentType:
		return strings.Compare(a.Text, b.Text)
	case ListType:
		return compareValues(a.Values, b.Values)
	case MapType:
		return compareMaps(a, b)
	case ExtendType:
		if c := slices.Compare(a.Keys, b.Keys); c != 0 {
			return c
		}
		return compareValues(a.Values, b.Values)
	case ElementType, TextType:
		return compareElements(a, b)
	}
	return 0
}

func compareValues(a, b []*Node) int {
	for i := range min(len(a), len(b)) {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// compareMaps orders maps by their entries in sorted key order.
func compareMaps(a, b *Node) int {
	ak := slices.Sorted(slices.Values(a.Keys))
	bk := slices.Sorted(slices.Values(b.Keys))
	for i := range min(len(ak), len(bk)) {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := Compare(a.Get(ak[i]), b.Get(bk[i])); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ak), len(bk))
}

func compareElements(a, b *Node) int {
	if c := strings.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	am, bm := a.Metadata, b.Metadata
	if am == nil {
		am = NewMap()
	}
	if bm == nil {
		bm = NewMap()
	}
	if c := compareMaps(am, bm); c != 0 {
		return c
	}
	for _, pair := range [][2]*Node{
		{a.Attributes, b.Attributes},
		{a.Body, b.Body},
		{a.Extend, b.Extend},
	} {
		if c := Compare(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Text, b.Text); c != 0 {
		return c
	}
	return strings.Compare(a.Marker, b.Marker)
}
