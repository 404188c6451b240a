package token

import (
	"errors"
	"testing"
)

type scanTest struct {
	in    string
	types []TokenType
}

func TestTokenize(t *testing.T) {
	tests := []scanTest{
		{
			in:    `<a>`,
			types: []TokenType{TLAngle, TIdent, TRAngle},
		},
		{
			in:    `<a id="x" n=-1.5 ok>`,
			types: []TokenType{TLAngle, TIdent, TIdent, TEquals, TString, TIdent, TEquals, TNumber, TIdent, TRAngle},
		},
		{
			in:    `<a {k=true, m=null} [1 'two'] ( <b> )>`,
			types: []TokenType{TLAngle, TIdent, TLCurl, TIdent, TEquals, TTrue, TComma, TIdent, TEquals, TNull, TRCurl, TLSquare, TNumber, TString, TRSquare, TLParen, TLAngle, TIdent, TRAngle, TRParen, TRAngle},
		},
		{
			in:    `<!-- note --> <a>`,
			types: []TokenType{TComment, TLAngle, TIdent, TRAngle},
		},
		{
			in:    `<p #>some <b> text</#>`,
			types: []TokenType{TLAngle, TIdent, THash, TRAngle, TText, TTextClose},
		},
		{
			in:    `<p #m>a </#x> b<#m>`,
			types: []TokenType{TLAngle, TIdent, THash, TIdent, TRAngle, TText, TTextClose},
		},
	}
	for _, tc := range tests {
		toks, err := Tokenize([]byte(tc.in))
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if len(toks) != len(tc.types) {
			t.Errorf("%q: got %d tokens want %d", tc.in, len(toks), len(tc.types))
			continue
		}
		for i := range toks {
			if toks[i].Type != tc.types[i] {
				t.Errorf("%q token %d: got %s want %s", tc.in, i, toks[i].Type, tc.types[i])
			}
		}
	}
}

func TestTokenString(t *testing.T) {
	toks, err := Tokenize([]byte(`<a k="a\tb\"c" j='it\'s' #>x y</#> <!--hi-->`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]string{
		4:  "a\tb\"c",
		7:  "it's",
		10: "x y",
		12: "hi",
	}
	for i, w := range want {
		if got := toks[i].String(); got != w {
			t.Errorf("token %d (%s): got %q want %q", i, toks[i].Type, got, w)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		in   string
		err  error
		line int
		col  int
	}{
		{in: `<a n=1.>`, err: ErrLiteral, line: 1, col: 6},
		{in: "<a\n s=\"x\\q\">", err: ErrLiteral, line: 2, col: 4},
		{in: `<a s="open`, err: ErrEOF, line: 1, col: 6},
		{in: `<p #m>body</#n>`, err: ErrMarker, line: 1, col: 11},
		{in: `<p #m>body`, err: ErrEOF, line: 1, col: 7},
		{in: `<!-- never closed`, err: ErrEOF, line: 1, col: 1},
		{in: `<a @>`, err: ErrUnexpected, line: 1, col: 4},
	}
	for _, tc := range tests {
		_, err := Tokenize([]byte(tc.in))
		if err == nil {
			t.Errorf("%q: expected error", tc.in)
			continue
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("%q: got %v want %v", tc.in, err, tc.err)
		}
		var te *TokenizeErr
		if !errors.As(err, &te) {
			t.Errorf("%q: %T is not a *TokenizeErr", tc.in, err)
			continue
		}
		l, c := te.Pos.LineCol()
		if l != tc.line || c != tc.col {
			t.Errorf("%q: got %d:%d want %d:%d", tc.in, l, c, tc.line, tc.col)
		}
	}
}

func TestQuote(t *testing.T) {
	for _, s := range []string{"", "plain", "a\"b", "back\\slash", "nl\nand\ttab\r", "it's", "ünï"} {
		q := Quote(s)
		u, err := Unquote([]byte(q))
		if err != nil {
			t.Errorf("%q: %v", q, err)
			continue
		}
		if u != s {
			t.Errorf("%q: got %q", s, u)
		}
	}
}

func TestNeedsQuote(t *testing.T) {
	tests := map[string]bool{
		"a":       false,
		"_x.y-z":  false,
		"A9":      false,
		"":        true,
		"9a":      true,
		"has sp":  true,
		"true":    true,
		"null":    true,
		"-lead":   true,
		"a:b":     true,
		"ok-name": false,
	}
	for in, want := range tests {
		if got := NeedsQuote(in); got != want {
			t.Errorf("%q: got %v want %v", in, got, want)
		}
	}
}
