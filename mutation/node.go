package mutation

import (
	"fmt"
	"io"
	"strings"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/parse"
)

// Tags used when a mutation list is written as knot.
const (
	ListTag     = "mutations"
	MutationTag = "mutation"
	BeforeTag   = "before"
	AfterTag    = "after"
)

// ToNode represents muts as a knot element:
//
//	<mutations [
//	  <mutation kind="TREE_UPDATE" path=":body::0" (
//	    <before [1]>
//	    <after [2]>
//	  )>
//	  <mutation kind="TREE_MOVE" from="::0" path="::2">
//	]>
//
// A value is held in the body of its before or after element, an extend
// block value in its extend block, and a comment as its text.
func ToNode(muts []Mutation) (*ir.Node, error) {
	res := ir.NewElement(ListTag).WithBody()
	for i := range muts {
		m := &muts[i]
		if _, ok := kindNames[m.Kind]; !ok {
			return nil, fmt.Errorf("%w: mutation %d has unknown kind %d", ErrMutation, i, int(m.Kind))
		}
		el := ir.NewElement(MutationTag).
			WithMeta("kind", ir.FromString(m.Kind.String()))
		if m.Kind == TreeMove {
			el.WithMeta("from", ir.FromString(m.PathBefore.String()))
		}
		el.WithMeta("path", ir.FromString(m.Path.String()))
		var vals []*ir.Node
		if m.ValueBefore != nil {
			vals = append(vals, valueElement(BeforeTag, m.ValueBefore))
		}
		if m.ValueAfter != nil {
			vals = append(vals, valueElement(AfterTag, m.ValueAfter))
		}
		if len(vals) != 0 {
			el.WithExtend(vals...)
		}
		res.Body.Values = append(res.Body.Values, el)
	}
	return res, nil
}

func valueElement(tag string, v *ir.Node) *ir.Node {
	switch v.Type {
	case ir.ExtendType:
		res := ir.NewElement(tag)
		res.Extend = v.Clone()
		return res
	case ir.CommentType:
		return ir.NewText(tag, textMarker(v.Text), v.Text).WithMeta("comment", ir.FromBool(true))
	default:
		return ir.NewElement(tag).WithBody(v.Clone())
	}
}

// textMarker picks a marker whose closer does not occur in text.
func textMarker(text string) string {
	for i := 0; ; i++ {
		m := ""
		if i > 0 {
			m = fmt.Sprintf("m%d", i)
		}
		if !strings.Contains(text, "</#"+m+">") && !strings.Contains(text, "<#"+m+">") {
			return m
		}
	}
}

// FromNode reads a mutation list written by ToNode.
func FromNode(n *ir.Node) ([]Mutation, error) {
	if n == nil || n.Type != ir.ElementType || n.Tag != ListTag {
		return nil, fmt.Errorf("%w: expected a <%s> element", ErrMutation, ListTag)
	}
	if n.Body == nil {
		return nil, nil
	}
	res := make([]Mutation, 0, len(n.Body.Values))
	for i, el := range n.Body.Values {
		m, err := mutationFromNode(el)
		if err != nil {
			return nil, fmt.Errorf("%w: mutation %d: %w", ErrMutation, i, err)
		}
		res = append(res, m)
	}
	return res, nil
}

func mutationFromNode(el *ir.Node) (Mutation, error) {
	var m Mutation
	if el.Type != ir.ElementType || el.Tag != MutationTag {
		return m, fmt.Errorf("expected a <%s> element, got %s", MutationTag, el.Type)
	}
	ks, ok := el.MetaString("kind")
	if !ok {
		return m, fmt.Errorf("missing kind")
	}
	k, err := ParseKind(ks)
	if err != nil {
		return m, err
	}
	m.Kind = k
	ps, ok := el.MetaString("path")
	if !ok {
		return m, fmt.Errorf("missing path")
	}
	if m.Path, err = npath.Parse(ps); err != nil {
		return m, err
	}
	if k == TreeMove {
		fs, ok := el.MetaString("from")
		if !ok {
			return m, fmt.Errorf("%s without from", k)
		}
		if m.PathBefore, err = npath.Parse(fs); err != nil {
			return m, err
		}
	}
	if el.Extend == nil {
		return m, nil
	}
	for i, tag := range el.Extend.Keys {
		v, err := valueFromElement(el.Extend.Values[i])
		if err != nil {
			return m, err
		}
		switch tag {
		case BeforeTag:
			m.ValueBefore = v
		case AfterTag:
			m.ValueAfter = v
		default:
			return m, fmt.Errorf("unexpected <%s>", tag)
		}
	}
	return m, nil
}

func valueFromElement(el *ir.Node) (*ir.Node, error) {
	if el.Type == ir.TextType {
		if c := el.MetaGet("comment"); c == nil || c.Type != ir.BoolType || !c.Bool {
			return nil, fmt.Errorf("<%s> text without comment flag", el.Tag)
		}
		return ir.Comment(el.Text), nil
	}
	if el.Extend != nil {
		return el.Extend.Clone(), nil
	}
	if el.Body == nil || len(el.Body.Values) != 1 {
		return nil, fmt.Errorf("<%s> must hold exactly one value", el.Tag)
	}
	return el.Body.Values[0].Clone(), nil
}

// Encode writes muts as knot to w.
func Encode(muts []Mutation, w io.Writer, opts ...encode.EncodeOption) error {
	n, err := ToNode(muts)
	if err != nil {
		return err
	}
	return encode.Encode(n, w, opts...)
}

// Decode parses a mutation list written by Encode.
func Decode(d []byte) ([]Mutation, error) {
	n, err := parse.ParseSingle(d)
	if err != nil {
		return nil, err
	}
	return FromNode(n)
}
