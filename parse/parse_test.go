package parse

import (
	"errors"
	"testing"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/token"
)

type parseTest struct {
	in string
	e  string
}

func TestParseCompact(t *testing.T) {
	tests := []parseTest{
		{in: `<a>`, e: `<a>`},
		{in: `<a   id = "x"  >`, e: `<a id="x">`},
		{in: `<a n=1 f=-1.5e-3 t=true nil=null>`, e: `<a n=1 f=-0.0015 t=true nil=null>`},
		{in: `<a remove>`, e: `<a remove=true>`},
		{in: `<a 'odd key'="v">`, e: `<a "odd key"="v">`},
		{in: `<a {x=1, y=[1, 2, 3], z={deep="yes"}}>`, e: `<a {x=1 y=[1 2 3] z={deep="yes"}}>`},
		{in: `<a [1 "two" <b> [3] {k=4}]>`, e: `<a [1 "two" <b> [3] {k=4}]>`},
		{in: `<a (<b> <c>) {k=1} [2]>`, e: `<a {k=1} [2] (<b> <c>)>`},
		{in: `<a {} [] ()>`, e: `<a {} [] ()>`},
		{in: `<p #>hello</#>`, e: `<p #>hello</#>`},
		{in: `<p #m>hello<#m>`, e: `<p #m>hello</#m>`},
		{in: `<p #true>x</#true>`, e: `<p #true>x</#true>`},
		{in: `<p #null>x<#null>`, e: `<p #null>x</#null>`},
		{in: `<p role="user" {n=1} #>x</#>`, e: `<p role="user" {n=1} #>x</#>`},
		{in: `<a s='it\'s "q"\n'>`, e: `<a s="it's \"q\"\n">`},
		{in: `<a child=<b x=1>>`, e: `<a child=<b x=1>>`},
		{in: `<a <!-- inside --> [<!-- item --> 1]>`, e: `<a [1]>`},
		{in: `<true null=false>`, e: `<true "null"=false>`},
		{
			in: `<root id="container" [ <a id="a1"> ] ( <header id="header" title="Hello"> )>`,
			e:  `<root id="container" [<a id="a1">] (<header id="header" title="Hello">)>`,
		},
	}
	for _, tc := range tests {
		doc, err := Parse([]byte(tc.in))
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if len(doc.Nodes) != 1 {
			t.Errorf("%q: got %d nodes", tc.in, len(doc.Nodes))
			continue
		}
		got, err := encode.String(doc.Nodes[0])
		if err != nil {
			t.Errorf("%q: encode: %v", tc.in, err)
			continue
		}
		if got != tc.e {
			t.Errorf("%q:\n got %s\nwant %s", tc.in, got, tc.e)
		}
	}
}

var roundTripInputs = []string{
	`<a>`,
	`<a id="x" n=1.25 big=1e300 neg=-7 flag>`,
	`<a {x=1 y=[1 2 {z=null}] "k k"=<b>}>`,
	`<a [1 "two" <b [3]> [4 [5]] {k=4}] (<c> <d {e=1}> <f [<g (<h>)>]>)>`,
	`<p #>hello</#>`,
	"<p #>\n  line one\n    line two\n  </#>",
	"<p #x>\n\nstarts blank\n\nand ends blank\n\n</#x>",
	"<p {a=1} #>\n  <b> is not a tag here </#y>\n  </#>",
	`<wrap [<p #>a</#> <q #m>` + "\n  b\n  c\n  " + `<#m>]>`,
	`<s v="tab\there" w="cr\rlf\n" x="back\\slash">`,
	`<a [<b [<c [<d {e=[<f>]}>]>]>]>`,
	`<e {} [] ()>`,
}

func TestRoundTrip(t *testing.T) {
	for _, in := range roundTripInputs {
		doc, err := Parse([]byte(in))
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		orig := doc.Nodes[0]
		for _, opts := range [][]encode.EncodeOption{
			nil,
			{encode.Pretty(true)},
			{encode.Pretty(true), encode.Indent(4)},
			{encode.Pretty(true), encode.IndentString("\t")},
		} {
			s, err := encode.String(orig, opts...)
			if err != nil {
				t.Errorf("%q: encode: %v", in, err)
				continue
			}
			again, err := ParseSingle([]byte(s))
			if err != nil {
				t.Errorf("%q: reparse of\n%s\n: %v", in, s, err)
				continue
			}
			if !ir.Equal(orig, again) {
				t.Errorf("%q: round trip through\n%s\ngave\n%s", in, s, encode.MustString(again))
			}
		}
	}
}

func TestExtendDuplicate(t *testing.T) {
	doc, err := Parse([]byte(`<wrap ( <a {v=1}> <b> <a {v=2}> )>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("got %d warnings: %v", len(doc.Warnings), doc.Warnings)
	}
	w := doc.Warnings[0]
	if w.Code != ir.DuplicateChild || w.Tag != "a" || w.Line != 1 || w.Col != 23 {
		t.Errorf("warning: %+v", w)
	}
	ext := doc.Nodes[0].Extend
	if got := ext.Order(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("order: %v", got)
	}
	v := ext.Get("a").Attributes.Get("v")
	if v == nil || v.Number != 2 {
		t.Errorf("a.v: %v", v)
	}
}

func TestTextDedent(t *testing.T) {
	in := "<p #>\n    first\n      indented\n    last\n    </#>"
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	n := doc.Nodes[0]
	if n.Type != ir.TextType {
		t.Fatalf("type %s", n.Type)
	}
	if want := "first\n  indented\nlast"; n.Text != want {
		t.Errorf("got %q want %q", n.Text, want)
	}
}

func TestNumbers(t *testing.T) {
	for lit, want := range map[string]float64{
		"1":       1,
		"-1":      -1,
		"1.5":     1.5,
		"1e10":    1e10,
		"-1.5e-3": -1.5e-3,
	} {
		n, err := ParseSingle([]byte(lit))
		if err != nil {
			t.Errorf("%s: %v", lit, err)
			continue
		}
		if n.Type != ir.NumberType || n.Number != want {
			t.Errorf("%s: got %s %v", lit, n.Type, n.Number)
		}
	}
	_, err := ParseSingle([]byte("1."))
	if !errors.Is(err, &Error{Code: InvalidLiteral}) {
		t.Errorf("1.: got %v", err)
	}
}

func TestKeywordMarkerRoundTrip(t *testing.T) {
	for _, m := range []string{"true", "false", "null"} {
		n, err := ParseSingle([]byte(`<p #m>x</#m>`))
		if err != nil {
			t.Fatal(err)
		}
		if err := ir.Set(n, npath.MustParse(":textMarker"), ir.FromString(m), ir.Replace); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		s, err := encode.String(n)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		back, err := ParseSingle([]byte(s))
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if back.Marker != m || back.Text != "x" {
			t.Errorf("%s: got marker %q text %q", s, back.Marker, back.Text)
		}
	}
}

func TestBareIdentifier(t *testing.T) {
	// a bare identifier is a flag in metadata position
	n, err := ParseSingle([]byte(`<a remove id="x">`))
	if err != nil {
		t.Fatal(err)
	}
	if f := n.MetaGet("remove"); f == nil || f.Type != ir.BoolType || !f.Bool {
		t.Errorf("flag: %v", f)
	}
	// and never a value
	for _, in := range []string{
		`<a k=bare>`,
		`<a {k=bare}>`,
		`<a [1 bare]>`,
		`<a {k=[bare]}>`,
		`bare`,
	} {
		_, err := ParseSingle([]byte(in))
		if !errors.Is(err, &Error{Code: InvalidLiteral}) {
			t.Errorf("%s: got %v", in, err)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		in        string
		code      Code
		line, col int
	}{
		{in: `<a`, code: UnexpectedEOF, line: 1, col: 3},
		{in: `<a [1 2`, code: UnexpectedEOF, line: 1, col: 8},
		{in: "<p #m>\ntext\n</#n>", code: MismatchedMarker, line: 3, col: 1},
		{in: `<p #>text`, code: UnexpectedEOF, line: 1, col: 6},
		{in: `<a [1] [2]>`, code: InvalidContent, line: 1, col: 8},
		{in: `<a {} {}>`, code: InvalidContent, line: 1, col: 7},
		{in: `<a () ()>`, code: InvalidContent, line: 1, col: 7},
		{in: `<a [1] #>x</#>`, code: InvalidContent, line: 1, col: 8},
		{in: `<a n=1.>`, code: InvalidLiteral, line: 1, col: 6},
		{in: `<a s="\x">`, code: InvalidLiteral, line: 1, col: 6},
		{in: `<a>]`, code: UnexpectedToken, line: 1, col: 4},
		{in: `<>`, code: UnexpectedToken, line: 1, col: 2},
		{in: `<a ( 1 )>`, code: UnexpectedToken, line: 1, col: 6},
		{in: `<a [1] k=2>`, code: UnexpectedToken, line: 1, col: 8},
		{in: `<a {k 1}>`, code: UnexpectedToken, line: 1, col: 7},
		{in: "<a>\n  \"top level\"", code: UnexpectedToken, line: 2, col: 3},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.in))
		if err == nil {
			t.Errorf("%q: expected error", tc.in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: %v is not a parse error", tc.in, err)
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("%q: %T", tc.in, err)
			continue
		}
		if pe.Code != tc.code || pe.Line() != tc.line || pe.Col() != tc.col {
			t.Errorf("%q: got %s at %d:%d want %s at %d:%d (%v)",
				tc.in, pe.Code, pe.Line(), pe.Col(), tc.code, tc.line, tc.col, err)
		}
	}
}

func TestParseSingle(t *testing.T) {
	n, err := ParseSingle([]byte("<!-- lead --> <a> <!-- trail -->"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag != "a" {
		t.Errorf("tag %q", n.Tag)
	}
	if _, err := ParseSingle([]byte("  <!-- nothing -->  ")); !errors.Is(err, &Error{Code: UnexpectedEOF}) {
		t.Errorf("empty: %v", err)
	}
	if _, err := ParseSingle([]byte("<a> <b>")); !errors.Is(err, &Error{Code: UnexpectedToken}) {
		t.Errorf("two nodes: %v", err)
	}
	if _, err := ParseSingle([]byte("<a> x")); !errors.Is(err, &Error{Code: UnexpectedToken}) {
		t.Errorf("trailing: %v", err)
	}
}

func TestParseNamedChildren(t *testing.T) {
	var warnings []ir.Warning
	n, err := ParseNamedChildren("tools", []byte(`<read {path="a"}> <write> <read {path="b"}>`), ParseWarnings(&warnings))
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag != "tools" || n.Type != ir.ElementType {
		t.Errorf("got %s %q", n.Type, n.Tag)
	}
	if got := n.Extend.Order(); len(got) != 2 || got[0] != "write" || got[1] != "read" {
		t.Errorf("order %v", got)
	}
	if len(warnings) != 1 || warnings[0].Code != ir.DuplicateChild {
		t.Errorf("warnings %v", warnings)
	}
	if p := n.Extend.Get("read").Attributes.Get("path"); p.String != "b" {
		t.Errorf("path %v", p)
	}
	if _, err := ParseNamedChildren("x", []byte(`<a> "lit"`)); !errors.Is(err, &Error{Code: UnexpectedToken}) {
		t.Errorf("literal child: %v", err)
	}
}

func TestComments(t *testing.T) {
	in := "<!-- head --><a><!--between--><b>"
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 2 {
		t.Errorf("without comments: %d nodes", len(doc.Nodes))
	}
	doc, err = Parse([]byte(in), ParseComments(true))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 4 || doc.Nodes[0].Type != ir.CommentType || doc.Nodes[0].Text != " head " {
		t.Fatalf("with comments: %v", doc.Nodes)
	}
	if len(doc.Elements()) != 2 {
		t.Errorf("elements: %d", len(doc.Elements()))
	}
	s, err := encode.DocumentString(doc)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<!-- head -->\n<a>\n<!--between-->\n<b>"; s != want {
		t.Errorf("got %q want %q", s, want)
	}
}

func TestPositions(t *testing.T) {
	pos := map[*ir.Node]*token.Pos{}
	doc, err := Parse([]byte("<a>\n  <b [\n    1]>"), ParsePositions(pos))
	if err != nil {
		t.Fatal(err)
	}
	b := doc.Nodes[1]
	if p := pos[b]; p == nil || p.Line() != 2 || p.Col() != 3 {
		t.Errorf("b at %v", p)
	}
	if p := pos[b.Body.Values[0]]; p == nil || p.Line() != 3 || p.Col() != 5 {
		t.Errorf("1 at %v", p)
	}
}
