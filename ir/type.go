package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ListType
	MapType
	CommentType
	ElementType
	TextType
	ExtendType
)

var typeNames = map[Type]string{
	NullType:    "Null",
	BoolType:    "Bool",
	NumberType:  "Number",
	StringType:  "String",
	ListType:    "List",
	MapType:     "Map",
	CommentType: "Comment",
	ElementType: "Element",
	TextType:    "Text",
	ExtendType:  "Extend",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, s := range typeNames {
		if s == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ListType,
		MapType,
		CommentType,
		ElementType,
		TextType,
		ExtendType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case NullType, BoolType, NumberType, StringType, CommentType:
		return true
	default:
		return false
	}
}

// IsElement reports whether t is one of the two element variants.
func (t Type) IsElement() bool {
	return t == ElementType || t == TextType
}

// Kind groups types the way structural consumers compare them: both
// element variants are one kind, and all leaves are one kind.
type Kind int

const (
	LiteralKind Kind = iota
	ListKind
	MapKind
	ElementKind
	ExtendKind
)

func (k Kind) String() string {
	switch k {
	case LiteralKind:
		return "literal"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	case ElementKind:
		return "element"
	case ExtendKind:
		return "extend"
	default:
		return "<unknown kind>"
	}
}

func (t Type) Kind() Kind {
	switch t {
	case NullType, BoolType, NumberType, StringType, CommentType:
		return LiteralKind
	case ListType:
		return ListKind
	case MapType:
		return MapKind
	case ElementType, TextType:
		return ElementKind
	case ExtendType:
		return ExtendKind
	default:
		panic(fmt.Sprintf("unknown type %d", int(t)))
	}
}
