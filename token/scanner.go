package token

import (
	"bytes"
	"fmt"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// Scanner splits a knot document into tokens. Whitespace is skipped,
// comments are returned as TComment tokens.
type Scanner struct {
	d      []byte
	i      int
	pd     *PosDoc
	peeked *Token
	err    error
}

func NewScanner(d []byte) *Scanner {
	return &Scanner{d: d, pd: NewPosDoc(d)}
}

// PosDoc returns the position index of the scanned document.
func (s *Scanner) PosDoc() *PosDoc {
	return s.pd
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (*Token, error) {
	if s.peeked != nil || s.err != nil {
		return s.peeked, s.err
	}
	s.peeked, s.err = s.scan()
	return s.peeked, s.err
}

// Next consumes and returns the next token. At the end of input it
// returns a TEOF token.
func (s *Scanner) Next() (*Token, error) {
	t, err := s.Peek()
	if err != nil {
		return nil, err
	}
	s.peeked = nil
	return t, nil
}

func (s *Scanner) scan() (*Token, error) {
	d := s.d
	for s.i < len(d) {
		switch d[s.i] {
		case ' ', '\t', '\r', '\n':
			s.i++
			continue
		}
		break
	}
	start := s.i
	if start == len(d) {
		return &Token{Type: TEOF, Pos: s.pd.Pos(start)}, nil
	}
	tok := func(tt TokenType, n int) (*Token, error) {
		s.i = start + n
		return &Token{Type: tt, Pos: s.pd.Pos(start), Bytes: d[start : start+n]}, nil
	}
	switch c := d[start]; c {
	case '<':
		if bytes.HasPrefix(d[start:], []byte(commentOpen)) {
			j := bytes.Index(d[start+len(commentOpen):], []byte(commentClose))
			if j == -1 {
				return nil, NewTokenizeErr(fmt.Errorf("%w: comment", ErrEOF), s.pd.Pos(start))
			}
			return tok(TComment, len(commentOpen)+j+len(commentClose))
		}
		return tok(TLAngle, 1)
	case '>':
		return tok(TRAngle, 1)
	case '{':
		return tok(TLCurl, 1)
	case '}':
		return tok(TRCurl, 1)
	case '[':
		return tok(TLSquare, 1)
	case ']':
		return tok(TRSquare, 1)
	case '(':
		return tok(TLParen, 1)
	case ')':
		return tok(TRParen, 1)
	case '=':
		return tok(TEquals, 1)
	case ',':
		return tok(TComma, 1)
	case '#':
		return tok(THash, 1)
	case '"', '\'':
		n, err := QuotedLen(d[start:])
		switch err {
		case nil:
			return tok(TString, n)
		case ErrUnterminated:
			return nil, NewTokenizeErr(fmt.Errorf("%w: %w string", ErrEOF, ErrUnterminated), s.pd.Pos(start))
		default:
			return nil, NewTokenizeErr(fmt.Errorf("%w: %w", ErrLiteral, err), s.pd.Pos(start))
		}
	case '+', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := number(d[start:])
		if err != nil {
			return nil, NewTokenizeErr(fmt.Errorf("%w: %w %q", ErrLiteral, err, d[start:min(start+n+1, len(d))]), s.pd.Pos(start))
		}
		return tok(TNumber, n)
	default:
		if !identStart(c) {
			return nil, UnexpectedErr(fmt.Sprintf("%q", c), s.pd.Pos(start))
		}
		j := start + 1
		for j < len(d) && identChar(d[j]) {
			j++
		}
		switch string(d[start:j]) {
		case "true":
			return tok(TTrue, j-start)
		case "false":
			return tok(TFalse, j-start)
		case "null":
			return tok(TNull, j-start)
		default:
			return tok(TIdent, j-start)
		}
	}
}

// RawText reads the raw body of a text element, starting right after the
// '>' of its opener, up to the closer for marker. The closer may be
// written </#marker> or <#marker>. It returns the raw text and the closer.
func (s *Scanner) RawText(marker string) (*Token, *Token, error) {
	if s.peeked != nil {
		// the body starts right after '>', nothing may have been scanned past it
		return nil, nil, UnexpectedErr("lookahead before text body", s.peeked.Pos)
	}
	d := s.d
	start := s.i
	var mismatch *Pos
	for j := start; j < len(d); j++ {
		if d[j] != '<' {
			continue
		}
		k := j + 1
		if k < len(d) && d[k] == '/' {
			k++
		}
		if k >= len(d) || d[k] != '#' {
			continue
		}
		k++
		m := k
		for m < len(d) && identChar(d[m]) {
			m++
		}
		if m >= len(d) || d[m] != '>' {
			continue
		}
		if string(d[k:m]) != marker {
			if mismatch == nil {
				mismatch = s.pd.Pos(j)
			}
			continue
		}
		s.i = m + 1
		text := &Token{Type: TText, Pos: s.pd.Pos(start), Bytes: d[start:j]}
		closer := &Token{Type: TTextClose, Pos: s.pd.Pos(j), Bytes: d[j : m+1]}
		return text, closer, nil
	}
	if mismatch != nil {
		return nil, nil, NewTokenizeErr(fmt.Errorf("%w: expected closer for #%s", ErrMarker, marker), mismatch)
	}
	return nil, nil, NewTokenizeErr(fmt.Errorf("%w: text opened here is never closed", ErrEOF), s.pd.Pos(start))
}
