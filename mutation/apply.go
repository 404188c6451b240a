package mutation

import (
	"fmt"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
)

// Apply applies muts to root in order and returns root. root is
// modified in place: callers that need the original must clone it first.
// Values are copied out of the mutations, so muts can be applied again.
//
// A TreeMove removes the node at PathBefore and inserts it at Path, with
// Path read after the removal.
func Apply(root *ir.Node, muts []Mutation) (*ir.Node, error) {
	for i := range muts {
		if err := applyOne(root, &muts[i]); err != nil {
			return root, fmt.Errorf("%w: mutation %d (%s): %w", ErrMutation, i, &muts[i], err)
		}
	}
	return root, nil
}

// ApplyDocument applies muts to the top-level nodes of doc as a list.
func ApplyDocument(doc *ir.Document, muts []Mutation) error {
	root := doc.AsList()
	_, err := Apply(root, muts)
	if root.Type != ir.ListType {
		return fmt.Errorf("%w: document root replaced by a %s", ErrMutation, root.Type)
	}
	doc.Nodes = root.Values
	return err
}

func applyOne(root *ir.Node, m *Mutation) error {
	if debug.Apply() {
		debug.Logf("apply %s\n", m)
	}
	switch m.Kind {
	case TreeAdd, ObjectAdd:
		if m.ValueAfter == nil {
			return fmt.Errorf("%s without a value", m.Kind)
		}
		return ir.Set(root, m.Path, m.ValueAfter.Clone(), ir.Insert)
	case TreeUpdate, ObjectUpdate:
		if m.ValueAfter == nil {
			return fmt.Errorf("%s without a value", m.Kind)
		}
		return ir.Set(root, m.Path, m.ValueAfter.Clone(), ir.Replace)
	case TreeDelete, ObjectDelete:
		_, err := ir.Delete(root, m.Path)
		return err
	case TreeMove:
		v, err := ir.Delete(root, m.PathBefore)
		if err != nil {
			return err
		}
		return ir.Set(root, m.Path, v, ir.Insert)
	default:
		return fmt.Errorf("unknown kind %d", int(m.Kind))
	}
}
