package mutation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
)

var (
	// ErrKindMismatch is returned by Diff when the two roots are of
	// different kinds.
	ErrKindMismatch = errors.New("kind mismatch")
	// ErrMutation wraps failures to apply or decode a mutation.
	ErrMutation = errors.New("mutation error")
)

type Kind int

const (
	TreeAdd Kind = iota + 1
	TreeDelete
	TreeMove
	TreeUpdate
	ObjectAdd
	ObjectDelete
	ObjectUpdate
)

var kindNames = map[Kind]string{
	TreeAdd:      "TREE_ADD",
	TreeDelete:   "TREE_DELETE",
	TreeMove:     "TREE_MOVE",
	TreeUpdate:   "TREE_UPDATE",
	ObjectAdd:    "OBJECT_ADD",
	ObjectDelete: "OBJECT_DELETE",
	ObjectUpdate: "OBJECT_UPDATE",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("<unknown kind %d>", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %d", ErrMutation, int(k))
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	v, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrMutation, s)
}

// IsAdd reports whether k inserts a value.
func (k Kind) IsAdd() bool { return k == TreeAdd || k == ObjectAdd }

// IsDelete reports whether k removes a value.
func (k Kind) IsDelete() bool { return k == TreeDelete || k == ObjectDelete }

// IsUpdate reports whether k replaces a value in place.
func (k Kind) IsUpdate() bool { return k == TreeUpdate || k == ObjectUpdate }

// Mutation is one typed edit addressed by a path. Adds carry ValueAfter,
// deletes ValueBefore, updates both, and moves carry PathBefore.
type Mutation struct {
	Kind        Kind
	Path        npath.Path
	PathBefore  npath.Path
	ValueBefore *ir.Node
	ValueAfter  *ir.Node
}

func (m *Mutation) String() string {
	buf := &strings.Builder{}
	buf.WriteString(m.Kind.String())
	buf.WriteByte(' ')
	if m.Kind == TreeMove {
		buf.WriteString(pathString(m.PathBefore))
		buf.WriteString(" -> ")
	}
	buf.WriteString(pathString(m.Path))
	if m.ValueBefore != nil {
		buf.WriteString(" before=")
		buf.WriteString(valueString(m.ValueBefore))
	}
	if m.ValueAfter != nil {
		buf.WriteString(" after=")
		buf.WriteString(valueString(m.ValueAfter))
	}
	return buf.String()
}

func pathString(p npath.Path) string {
	if len(p) == 0 {
		return "<root>"
	}
	return p.String()
}

func valueString(v *ir.Node) string {
	s, err := encode.String(v)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", v.Type, err)
	}
	return s
}
