package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knot-format/go-knot/format"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth  int
	indent string
	pretty bool

	format format.Format

	buf   bytes.Buffer
	Color func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) (*EncState, error) {
	es := &EncState{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(es)
	}
	if strings.Trim(es.indent, " \t") != "" {
		return nil, fmt.Errorf("%w: indent %q is not blank", ErrEncoding, es.indent)
	}
	return es, nil
}

// Encode writes node to w followed by a newline.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es, err := newState(opts)
	if err != nil {
		return err
	}
	if !es.format.IsKnot() {
		return encodePlain(ir.ToPlain(node), w, es)
	}
	if err := encodeNode(node, es); err != nil {
		return err
	}
	es.buf.WriteByte('\n')
	_, err = w.Write(es.buf.Bytes())
	return err
}

// EncodeDocument writes the nodes of doc to w, each followed by a newline.
// Comments are written only in knot format.
func EncodeDocument(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es, err := newState(opts)
	if err != nil {
		return err
	}
	if !es.format.IsKnot() {
		return encodePlain(ir.DocumentToPlain(doc), w, es)
	}
	for _, n := range doc.Nodes {
		if err := encodeNode(n, es); err != nil {
			return err
		}
		es.buf.WriteByte('\n')
	}
	_, err = w.Write(es.buf.Bytes())
	return err
}

// String encodes node without a trailing newline.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DocumentString encodes doc without a trailing newline.
func DocumentString(doc *ir.Document, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeDocument(doc, buf, opts...); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (es *EncState) write(t ir.Type, a ColorAttr, s string) {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	es.buf.WriteString(s)
}

// nl starts a new line indented to the current depth.
func (es *EncState) nl() {
	es.buf.WriteByte('\n')
	es.buf.WriteString(strings.Repeat(es.indent, es.depth))
}

func encodeNode(n *ir.Node, es *EncState) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	switch n.Type {
	case ir.NullType:
		es.write(n.Type, ValueColor, "null")
	case ir.BoolType:
		if n.Bool {
			es.write(n.Type, ValueColor, "true")
		} else {
			es.write(n.Type, ValueColor, "false")
		}
	case ir.NumberType:
		s, err := token.FormatNumber(n.Number)
		if err != nil {
			return fmt.Errorf("%w: number %v", ErrEncoding, n.Number)
		}
		es.write(n.Type, ValueColor, s)
	case ir.StringType:
		es.write(n.Type, ValueColor, token.Quote(n.String))
	case ir.CommentType:
		if strings.Contains(n.Text, "-->") {
			return fmt.Errorf("%w: comment contains \"-->\"", ErrEncoding)
		}
		es.write(n.Type, CommentColor, "<!--"+n.Text+"-->")
	case ir.ListType:
		return encodeItems(n, "[", "]", es)
	case ir.MapType:
		return encodeMap(n, es)
	case ir.ExtendType:
		return encodeItems(n, "(", ")", es)
	case ir.ElementType, ir.TextType:
		return encodeElement(n, es)
	default:
		return fmt.Errorf("%w: unknown node type %d", ErrEncoding, int(n.Type))
	}
	return nil
}

// encodeItems writes the values of a list or extend node between open and
// close.
func encodeItems(n *ir.Node, open, close string, es *EncState) error {
	es.write(n.Type, SepColor, open)
	if len(n.Values) == 0 {
		es.write(n.Type, SepColor, close)
		return nil
	}
	es.depth++
	for i, v := range n.Values {
		if es.pretty {
			es.nl()
		} else if i > 0 {
			es.buf.WriteByte(' ')
		}
		if n.Type == ir.ExtendType && (!v.Type.IsElement() || v.Tag != n.Keys[i]) {
			return fmt.Errorf("%w: extend child %d is not an element tagged %q", ErrEncoding, i, n.Keys[i])
		}
		if err := encodeNode(v, es); err != nil {
			return err
		}
	}
	es.depth--
	if es.pretty {
		es.nl()
	}
	es.write(n.Type, SepColor, close)
	return nil
}

func encodeMap(n *ir.Node, es *EncState) error {
	es.write(n.Type, SepColor, "{")
	if len(n.Keys) == 0 {
		es.write(n.Type, SepColor, "}")
		return nil
	}
	es.depth++
	for i, k := range n.Keys {
		if es.pretty {
			es.nl()
		} else if i > 0 {
			es.buf.WriteByte(' ')
		}
		es.write(n.Type, KeyColor, token.QuoteKey(k))
		es.write(n.Type, SepColor, "=")
		if err := encodeNode(n.Values[i], es); err != nil {
			return err
		}
	}
	es.depth--
	if es.pretty {
		es.nl()
	}
	es.write(n.Type, SepColor, "}")
	return nil
}

// encodeElement writes an element. Metadata stays on the tag line; in
// pretty mode the contents of sections go on their own lines.
func encodeElement(n *ir.Node, es *EncState) error {
	if !token.IsIdent(n.Tag) {
		return fmt.Errorf("%w: tag %q is not an identifier", ErrEncoding, n.Tag)
	}
	es.write(n.Type, SepColor, "<")
	es.write(n.Type, TagColor, n.Tag)
	if n.Metadata != nil {
		for i, k := range n.Metadata.Keys {
			es.buf.WriteByte(' ')
			es.write(n.Type, KeyColor, token.QuoteKey(k))
			es.write(n.Type, SepColor, "=")
			if err := encodeNode(n.Metadata.Values[i], es); err != nil {
				return err
			}
		}
	}
	if n.Attributes != nil {
		es.buf.WriteByte(' ')
		if err := encodeMap(n.Attributes, es); err != nil {
			return err
		}
	}
	if n.Type == ir.TextType {
		return encodeText(n, es)
	}
	if n.Body != nil {
		es.buf.WriteByte(' ')
		if err := encodeItems(n.Body, "[", "]", es); err != nil {
			return err
		}
	}
	if n.Extend != nil {
		es.buf.WriteByte(' ')
		if err := encodeItems(n.Extend, "(", ")", es); err != nil {
			return err
		}
	}
	es.write(n.Type, SepColor, ">")
	return nil
}

// encodeText writes the text opener, body and closer of a text element.
// Multi-line text is written with the closer on its own line, indented
// like the element, which the parser's dedent undoes.
func encodeText(n *ir.Node, es *EncState) error {
	m := n.Marker
	if m != "" && !token.IsIdent(m) {
		return fmt.Errorf("%w: text marker %q is not an identifier", ErrEncoding, m)
	}
	for _, closer := range []string{"</#" + m + ">", "<#" + m + ">"} {
		if strings.Contains(n.Text, closer) {
			return fmt.Errorf("%w: text of %q contains its closer %s, use another marker", ErrEncoding, n.Tag, closer)
		}
	}
	es.buf.WriteByte(' ')
	es.write(n.Type, SepColor, "#")
	es.write(n.Type, MarkerColor, m)
	es.write(n.Type, SepColor, ">")
	text := n.Text
	if strings.Contains(text, "\n") {
		indent := ""
		if es.pretty {
			indent = strings.Repeat(es.indent, es.depth)
		}
		text = token.Indent(text, indent)
	}
	es.write(n.Type, TextColor, text)
	es.write(n.Type, SepColor, "</#")
	es.write(n.Type, MarkerColor, m)
	es.write(n.Type, SepColor, ">")
	return nil
}
