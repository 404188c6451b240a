package npath

import (
	"strconv"
	"strings"

	"github.com/knot-format/go-knot/token"
)

type SegmentType int

const (
	UniqueName SegmentType = iota
	InstanceProperty
	MapKey
	ListIndex
)

func (t SegmentType) String() string {
	switch t {
	case UniqueName:
		return "UniqueName"
	case InstanceProperty:
		return "InstanceProperty"
	case MapKey:
		return "MapKey"
	case ListIndex:
		return "ListIndex"
	default:
		return "<unknown segment>"
	}
}

// Segment is one step of a path. Name holds the id, property name or key;
// Index holds the list index.
type Segment struct {
	Type  SegmentType
	Name  string
	Index int
}

func Unique(id string) Segment {
	return Segment{Type: UniqueName, Name: id}
}

func Property(name string) Segment {
	return Segment{Type: InstanceProperty, Name: name}
}

func Key(k string) Segment {
	return Segment{Type: MapKey, Name: k}
}

func Index(i int) Segment {
	return Segment{Type: ListIndex, Index: i}
}

// String returns the canonical form of the segment.
func (s Segment) String() string {
	switch s.Type {
	case UniqueName:
		if idNeedsQuote(s.Name) {
			return "#" + quoteSingle(s.Name)
		}
		return "#" + s.Name
	case InstanceProperty:
		return ":" + s.Name
	case MapKey:
		return "::" + quoteSingle(s.Name)
	case ListIndex:
		return "::" + strconv.Itoa(s.Index)
	default:
		return "<bad segment>"
	}
}

func idNeedsQuote(id string) bool {
	return id == "" || strings.ContainsAny(id, "#:'\" \t\n\r\\")
}

func quoteSingle(s string) string {
	q := token.Quote(s)
	// swap the double quoted form for a single quoted one
	body := q[1 : len(q)-1]
	body = strings.ReplaceAll(body, `\"`, `"`)
	body = strings.ReplaceAll(body, `'`, `\'`)
	return "'" + body + "'"
}
