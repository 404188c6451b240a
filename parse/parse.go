// Package parse provides knot parsing support.
//
// [Parse] reads a whole document, [ParseSingle] a single value and
// [ParseNamedChildren] the contents of an extend block. Syntax errors are
// returned as *[Error] carrying a [Code] and a position; duplicate tags in
// extend blocks are reported as warnings and never abort parsing.
package parse

import (
	"fmt"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/token"
)

type parser struct {
	s        *token.Scanner
	opts     *parseOpts
	warnings *[]ir.Warning
}

func newParser(d []byte, opts []ParseOption) (*parser, *parseOpts) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	var w []ir.Warning
	return &parser{s: token.NewScanner(d), opts: pOpts, warnings: &w}, pOpts
}

// finish hands the collected warnings to the caller's collector.
func (p *parser) finish() []ir.Warning {
	if p.opts.warnings != nil {
		*p.opts.warnings = append(*p.opts.warnings, *p.warnings...)
	}
	if debug.Parse() && len(*p.warnings) != 0 {
		debug.Logf("parse: %d warnings: %v\n", len(*p.warnings), *p.warnings)
	}
	return *p.warnings
}

// Parse parses a document: a sequence of elements and comments.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	p, pOpts := newParser(d, opts)
	doc := &ir.Document{}
	for {
		t, err := p.s.Peek()
		if err != nil {
			return nil, tokenErr(err)
		}
		switch t.Type {
		case token.TEOF:
			doc.Warnings = p.finish()
			return doc, nil
		case token.TComment:
			p.s.Next()
			if pOpts.comments {
				c := ir.Comment(t.String())
				p.trackPos(c, t.Pos)
				doc.Nodes = append(doc.Nodes, c)
			}
		case token.TLAngle:
			el, err := p.element()
			if err != nil {
				return nil, err
			}
			doc.Nodes = append(doc.Nodes, el)
		default:
			return nil, newErr(UnexpectedToken, t.Pos, "unexpected %q at top level, expected an element", t.Bytes)
		}
	}
}

// ParseSingle parses text holding exactly one value, usually an element.
// Comments around it are ignored.
func ParseSingle(d []byte, opts ...ParseOption) (*ir.Node, error) {
	p, _ := newParser(d, opts)
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type == token.TEOF {
		return nil, newErr(UnexpectedEOF, t.Pos, "no node in input")
	}
	res, err := p.value()
	if err != nil {
		return nil, err
	}
	t, err = p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type != token.TEOF {
		return nil, newErr(UnexpectedToken, t.Pos, "trailing content %q after node", t.Bytes)
	}
	p.finish()
	return res, nil
}

// ParseNamedChildren parses d as the contents of an extend block and
// returns a data element tagged name holding them.
func ParseNamedChildren(name string, d []byte, opts ...ParseOption) (*ir.Node, error) {
	p, _ := newParser(d, opts)
	res := ir.NewElement(name)
	res.Extend = ir.NewExtend()
	if err := p.extendItems(res, token.TEOF); err != nil {
		return nil, err
	}
	p.finish()
	return res, nil
}

func (p *parser) trackPos(n *ir.Node, pos *token.Pos) {
	if p.opts.positions != nil && pos != nil {
		p.opts.positions[n] = pos
	}
}

func (p *parser) warn(code ir.WarningCode, pos *token.Pos, tag, format string, args ...any) {
	w := ir.Warning{Code: code, Tag: tag, Msg: fmt.Sprintf(format, args...)}
	if pos != nil {
		w.Line, w.Col = pos.LineCol()
	}
	*p.warnings = append(*p.warnings, w)
}

// peek returns the next token that is not a comment.
func (p *parser) peek() (*token.Token, error) {
	for {
		t, err := p.s.Peek()
		if err != nil {
			return nil, tokenErr(err)
		}
		if t.Type != token.TComment {
			return t, nil
		}
		p.s.Next()
	}
}

func (p *parser) next() (*token.Token, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	p.s.Next()
	return t, nil
}

func isKey(t *token.Token) bool {
	return t.Type == token.TIdent || t.Type == token.TString || t.Type.IsKeyword()
}

func keyString(t *token.Token) (string, error) {
	if t.Type != token.TString {
		return string(t.Bytes), nil
	}
	s, err := token.Unquote(t.Bytes)
	if err != nil {
		return "", &Error{Code: InvalidLiteral, Pos: t.Pos, Msg: fmt.Sprintf("key %s: %v", t.Bytes, err), Err: err}
	}
	return s, nil
}

// element parses an element starting at its '<'.
func (p *parser) element() (*ir.Node, error) {
	lt, err := p.next()
	if err != nil {
		return nil, err
	}
	if lt.Type != token.TLAngle {
		return nil, unexpected(lt, "where an element should start")
	}
	tagTok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tagTok.Type != token.TIdent && !tagTok.Type.IsKeyword() {
		return nil, unexpected(tagTok, "where a tag should be")
	}
	el := ir.NewElement(string(tagTok.Bytes))
	p.trackPos(el, lt.Pos)
	if err := p.metadata(el); err != nil {
		return nil, err
	}
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.TRAngle:
			return el, nil
		case token.TLCurl:
			if el.Attributes != nil {
				return nil, newErr(InvalidContent, t.Pos, "element %q has a second attribute block", el.Tag)
			}
			m, err := p.mapItems(t)
			if err != nil {
				return nil, err
			}
			el.Attributes = m
		case token.TLSquare:
			if el.Body != nil {
				return nil, newErr(InvalidContent, t.Pos, "element %q has a second body block", el.Tag)
			}
			l, err := p.listItems(t)
			if err != nil {
				return nil, err
			}
			el.Body = l
		case token.TLParen:
			if el.Extend != nil {
				return nil, newErr(InvalidContent, t.Pos, "element %q has a second extend block", el.Tag)
			}
			el.Extend = ir.NewExtend()
			p.trackPos(el.Extend, t.Pos)
			if err := p.extendItems(el, token.TRParen); err != nil {
				return nil, err
			}
		case token.THash:
			if el.Body != nil || el.Extend != nil {
				return nil, newErr(InvalidContent, t.Pos, "text element %q cannot have a body or extend block", el.Tag)
			}
			return p.text(el)
		default:
			if isKey(t) {
				return nil, newErr(UnexpectedToken, t.Pos, "metadata %q after a section of element %q", t.Bytes, el.Tag)
			}
			return nil, unexpected(t, fmt.Sprintf("in element %q", el.Tag))
		}
	}
}

// metadata parses the key=value pairs and flags following a tag.
func (p *parser) metadata(el *ir.Node) error {
	for {
		t, err := p.peek()
		if err != nil {
			return err
		}
		if !isKey(t) {
			return nil
		}
		p.s.Next()
		key, err := keyString(t)
		if err != nil {
			return err
		}
		eq, err := p.peek()
		if err != nil {
			return err
		}
		if eq.Type != token.TEquals {
			if t.Type == token.TString {
				return unexpected(eq, fmt.Sprintf("after quoted metadata key %s, expected '='", t.Bytes))
			}
			flag := ir.FromBool(true)
			p.trackPos(flag, t.Pos)
			el.Meta().Put(key, flag)
			continue
		}
		p.s.Next()
		v, err := p.value()
		if err != nil {
			return err
		}
		el.Meta().Put(key, v)
	}
}

// text parses the rest of a text element after its '#'.
func (p *parser) text(el *ir.Node) (*ir.Node, error) {
	marker := ""
	t, err := p.s.Next()
	if err != nil {
		return nil, tokenErr(err)
	}
	// keywords are identifiers here, as in tags
	if t.Type == token.TIdent || t.Type.IsKeyword() {
		marker = string(t.Bytes)
		if t, err = p.s.Next(); err != nil {
			return nil, tokenErr(err)
		}
	}
	if t.Type != token.TRAngle {
		return nil, unexpected(t, "in text opener, expected '>'")
	}
	raw, _, err := p.s.RawText(marker)
	if err != nil {
		return nil, tokenErr(err)
	}
	el.Type = ir.TextType
	el.Marker = marker
	el.Text = token.Dedent(string(raw.Bytes))
	return el, nil
}

// value parses a literal, map, list or element.
func (p *parser) value() (*ir.Node, error) {
	t, err := p.peek()
	if err != nil {
		return nil, err
	}
	if t.Type == token.TLAngle {
		return p.element()
	}
	p.s.Next()
	var res *ir.Node
	switch t.Type {
	case token.TString:
		s, err := token.Unquote(t.Bytes)
		if err != nil {
			return nil, &Error{Code: InvalidLiteral, Pos: t.Pos, Msg: fmt.Sprintf("string %s: %v", t.Bytes, err), Err: err}
		}
		res = ir.FromString(s)
	case token.TNumber:
		f, err := token.ParseNumber(t.Bytes)
		if err != nil {
			return nil, &Error{Code: InvalidLiteral, Pos: t.Pos, Msg: fmt.Sprintf("number %s: %v", t.Bytes, err), Err: err}
		}
		res = ir.FromNumber(f)
	case token.TTrue:
		res = ir.FromBool(true)
	case token.TFalse:
		res = ir.FromBool(false)
	case token.TNull:
		res = ir.Null()
	case token.TLCurl:
		return p.mapItems(t)
	case token.TLSquare:
		return p.listItems(t)
	case token.TIdent:
		return nil, newErr(InvalidLiteral, t.Pos, "bare identifier %q is not a value, quote it", t.Bytes)
	default:
		return nil, unexpected(t, "where a value should be")
	}
	p.trackPos(res, t.Pos)
	return res, nil
}

// mapItems parses map entries after the opening '{'. Commas between
// entries are optional. A repeated key replaces the earlier value.
func (p *parser) mapItems(open *token.Token) (*ir.Node, error) {
	res := ir.NewMap()
	p.trackPos(res, open.Pos)
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch {
		case t.Type == token.TRCurl:
			return res, nil
		case t.Type == token.TComma:
			continue
		case isKey(t):
		default:
			return nil, unexpected(t, "in map, expected a key or '}'")
		}
		key, err := keyString(t)
		if err != nil {
			return nil, err
		}
		eq, err := p.next()
		if err != nil {
			return nil, err
		}
		if eq.Type != token.TEquals {
			return nil, unexpected(eq, fmt.Sprintf("after map key %q, expected '='", key))
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		res.Put(key, v)
	}
}

// listItems parses list items after the opening '['.
func (p *parser) listItems(open *token.Token) (*ir.Node, error) {
	res := ir.NewList()
	p.trackPos(res, open.Pos)
	for {
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch t.Type {
		case token.TRSquare:
			p.s.Next()
			return res, nil
		case token.TComma:
			p.s.Next()
			continue
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		res.Values = append(res.Values, v)
	}
}

// extendItems parses elements into el.Extend until a token of type end.
func (p *parser) extendItems(el *ir.Node, end token.TokenType) error {
	for {
		t, err := p.peek()
		if err != nil {
			return err
		}
		switch t.Type {
		case end:
			p.s.Next()
			return nil
		case token.TLAngle:
			child, err := p.element()
			if err != nil {
				return err
			}
			if el.Extend.ExtendPut(child) {
				p.warn(ir.DuplicateChild, t.Pos, child.Tag,
					"duplicate child %q in extend block of %q, the later one replaces it", child.Tag, el.Tag)
			}
		default:
			return unexpected(t, fmt.Sprintf("in extend block of %q, expected an element", el.Tag))
		}
	}
}
