package mutation

import (
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-json"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
)

// Op is an RFC 6902 JSON Patch operation.
type Op struct {
	Op    string
	From  string
	Path  string
	Value any
}

// MarshalJSON writes the value member for every operation which takes
// one, null values included.
func (o Op) MarshalJSON() ([]byte, error) {
	m := map[string]any{"op": o.Op, "path": o.Path}
	switch o.Op {
	case "move", "copy":
		m["from"] = o.From
	case "remove":
	default:
		m["value"] = o.Value
	}
	return json.Marshal(m)
}

// JSONPatch translates muts, as applied to root, into JSON Patch
// operations against the plain projection of root (see ir.ToPlain). root
// is not modified. Extend children are addressed under
// /extend/children/<tag>, and each change to an extend block's tags is
// followed by a replace of /extend/order.
//
// Plain lists drop comments, so root must not hold comments inside
// lists.
func JSONPatch(root *ir.Node, muts []Mutation) ([]byte, error) {
	ops, err := JSONPatchOps(root, muts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ops)
}

// JSONPatchOps is JSONPatch returning the operations unencoded.
func JSONPatchOps(root *ir.Node, muts []Mutation) ([]Op, error) {
	sim := root.Clone()
	var ops []Op
	for i := range muts {
		m := &muts[i]
		mops, err := jsonOps(sim, m)
		if err != nil {
			return nil, fmt.Errorf("%w: mutation %d (%s): %w", ErrMutation, i, m, err)
		}
		ops = append(ops, mops...)
	}
	return ops, nil
}

// PatchPlain applies a JSON Patch document to the plain projection of
// root and returns the patched JSON.
func PatchPlain(root *ir.Node, patch []byte) ([]byte, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMutation, err)
	}
	d, err := json.Marshal(ir.ToPlain(root))
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMutation, err)
	}
	return out, nil
}

// jsonOps translates m against sim and then applies m to sim.
func jsonOps(sim *ir.Node, m *Mutation) ([]Op, error) {
	if m.Kind == TreeMove {
		return moveOps(sim, m)
	}
	p := concreteTarget(sim, m.Path)
	if m.Kind.IsDelete() {
		ptr, ext, err := pointer(sim, p, nil)
		if err != nil {
			return nil, err
		}
		if err := applyOne(sim, m); err != nil {
			return nil, err
		}
		if op, ok := clearedProperty(p, ptr); ok {
			return []Op{op}, nil
		}
		ops := []Op{{Op: "remove", Path: ptr}}
		return append(ops, orderOps(sim, ext)...), nil
	}

	// adds and updates
	if len(p) == 0 {
		if err := applyOne(sim, m); err != nil {
			return nil, err
		}
		return []Op{{Op: "replace", Path: "", Value: ir.ToPlain(sim)}}, nil
	}
	missing := missingPrefix(sim, p)
	wasData := false
	if el, err := ir.Resolve(sim, p.Parent(), ir.NonStrict()); err == nil && el != nil {
		wasData = el.Type == ir.ElementType
	}
	if err := applyOne(sim, m); err != nil {
		return nil, err
	}
	if missing < len(p)-1 {
		// created containers come in whole
		q, err := ir.Concrete(sim, p[:missing+1])
		if err != nil {
			return nil, err
		}
		return addOps(sim, q)
	}
	last := p[len(p)-1]
	if last.Type == npath.InstanceProperty && last.Name == ir.PropText && wasData {
		// a data element became a text element
		return replaceOps(sim, p.Parent())
	}
	if m.Kind.IsUpdate() {
		return replaceOps(sim, p)
	}
	if last.Type == npath.ListIndex {
		if par, _ := ir.Resolve(sim, p.Parent()); par != nil && par.Type == ir.ExtendType {
			// the inserted child is addressed by its tag
			return addOps(sim, p.Parent().Append(npath.Key(par.Keys[last.Index])))
		}
	}
	return addOps(sim, p)
}

// concreteTarget rewrites the id segments of p for y. Adds and some
// updates address entries which do not exist yet, so only the parent is
// rewritten for them, or nothing if the parent is missing too.
func concreteTarget(y *ir.Node, p npath.Path) npath.Path {
	if c, err := ir.Concrete(y, p); err == nil {
		return c
	}
	if len(p) == 0 {
		return p
	}
	if c, err := ir.Concrete(y, p.Parent()); err == nil {
		return c.Append(p[len(p)-1])
	}
	return p
}

// moveOps translates a move into a JSON Patch move, which also removes
// before it adds.
func moveOps(sim *ir.Node, m *Mutation) ([]Op, error) {
	from, err := ir.Concrete(sim, m.PathBefore)
	if err != nil {
		return nil, err
	}
	fromPtr, fromExt, err := pointer(sim, from, nil)
	if err != nil {
		return nil, err
	}
	v, err := ir.Resolve(sim, from)
	if err != nil {
		return nil, err
	}
	if err := applyOne(sim, m); err != nil {
		return nil, err
	}
	to := concreteTarget(sim, m.Path)
	toPtr, toExt, err := pointer(sim, to, v)
	if err != nil {
		return nil, err
	}
	ops := []Op{{Op: "move", From: fromPtr, Path: toPtr}}
	return append(ops, orderOps(sim, fromExt, toExt)...), nil
}

// missingPrefix returns the index of the first segment of p that does
// not resolve in y, or len(p).
func missingPrefix(y *ir.Node, p npath.Path) int {
	for i := range p {
		n, err := ir.Resolve(y, p[:i+1], ir.NonStrict())
		if err != nil || n == nil {
			return i
		}
	}
	return len(p)
}

func addOps(sim *ir.Node, p npath.Path) ([]Op, error) {
	return valueOps("add", sim, p)
}

func replaceOps(sim *ir.Node, p npath.Path) ([]Op, error) {
	return valueOps("replace", sim, p)
}

func valueOps(op string, sim *ir.Node, p npath.Path) ([]Op, error) {
	v, err := ir.Resolve(sim, p)
	if err != nil {
		return nil, err
	}
	ptr, ext, err := pointer(sim, p, v)
	if err != nil {
		return nil, err
	}
	ops := []Op{{Op: op, Path: ptr, Value: ir.ToPlain(v)}}
	return append(ops, orderOps(sim, ext)...), nil
}

// clearedProperty handles deletes of element properties which stay in
// the plain projection with an empty value.
func clearedProperty(p npath.Path, ptr string) (Op, bool) {
	last := p[len(p)-1]
	if last.Type != npath.InstanceProperty {
		return Op{}, false
	}
	switch last.Name {
	case ir.PropMetadata:
		return Op{Op: "replace", Path: ptr, Value: map[string]any{}}, true
	case ir.PropText, ir.PropTextMarker:
		return Op{Op: "replace", Path: ptr, Value: ""}, true
	}
	return Op{}, false
}

// orderOps replaces the order of each extend block named by exts, given
// as paths to the extend node.
func orderOps(sim *ir.Node, exts ...npath.Path) []Op {
	var ops []Op
	seen := map[string]bool{}
	for _, ext := range exts {
		if ext == nil {
			continue
		}
		ptr, _, err := pointer(sim, ext, nil)
		if err != nil {
			continue
		}
		if seen[ptr] {
			continue
		}
		seen[ptr] = true
		e, err := ir.Resolve(sim, ext)
		if err != nil || e.Type != ir.ExtendType {
			continue
		}
		ops = append(ops, Op{Op: "replace", Path: ptr + "/order", Value: ir.ToPlain(e.OrderNode())})
	}
	return ops
}

// pointer converts a concrete path into a JSON pointer into the plain
// projection of y. If the path addresses an extend child, the path of
// the extend block is returned too. v is the value at the end of p when
// p does not address anything in y yet.
func pointer(y *ir.Node, p npath.Path, v *ir.Node) (string, npath.Path, error) {
	buf := &strings.Builder{}
	var ext npath.Path
	cur := y
	for i, seg := range p {
		if cur == nil {
			return "", nil, fmt.Errorf("no node before %s in %s", seg, p)
		}
		ext = nil
		switch seg.Type {
		case npath.InstanceProperty:
			buf.WriteString("/" + escape(seg.Name))
		case npath.MapKey:
			if cur.Type == ir.ExtendType {
				buf.WriteString("/children")
				ext = p[:i]
			}
			buf.WriteString("/" + escape(seg.Name))
		case npath.ListIndex:
			if cur.Type == ir.ExtendType {
				ext = p[:i]
				tag := ""
				switch {
				case seg.Index < len(cur.Keys):
					tag = cur.Keys[seg.Index]
				case v != nil && v.Type.IsElement():
					tag = v.Tag
				default:
					return "", nil, fmt.Errorf("no extend child at %d in %s", seg.Index, p)
				}
				buf.WriteString("/children/" + escape(tag))
				break
			}
			buf.WriteString("/" + strconv.Itoa(seg.Index))
		default:
			return "", nil, fmt.Errorf("%s in a concrete path", seg)
		}
		next, _ := ir.Resolve(y, p[:i+1], ir.NonStrict())
		cur = next
	}
	return buf.String(), ext, nil
}

func escape(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
