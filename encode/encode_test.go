package encode_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/format"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/parse"
)

func TestPretty(t *testing.T) {
	in := `<root id="container" {title="Hello" tags=["a" "b"] empty={}} [<a id="a1"> <p #>one` + "\n" + `two</#>] (<header id="header" title="Hello">)>`
	n, err := parse.ParseSingle([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	got, err := encode.String(n, encode.Pretty(true))
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`<root id="container" {`,
		`  title="Hello"`,
		`  tags=[`,
		`    "a"`,
		`    "b"`,
		`  ]`,
		`  empty={}`,
		`} [`,
		`  <a id="a1">`,
		`  <p #>`,
		`  one`,
		`  two`,
		`  </#>`,
		`] (`,
		`  <header id="header" title="Hello">`,
		`)>`,
	}, "\n")
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestCompactText(t *testing.T) {
	n := ir.NewText("p", "", "a\n  b")
	got, err := encode.String(n)
	if err != nil {
		t.Fatal(err)
	}
	if want := "<p #>\na\n  b\n</#>"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestQuotedKeys(t *testing.T) {
	n := ir.NewElement("a").WithMeta("has space", ir.FromInt(1)).WithMeta("ok", ir.FromInt(2))
	n.Attributes = ir.FromKeyVals([]ir.KeyVal{
		{Key: "", Val: ir.Null()},
		{Key: "9lives", Val: ir.FromBool(false)},
		{Key: "false", Val: ir.FromString("x")},
	})
	got := encode.MustString(n)
	if want := `<a "has space"=1 ok=2 {""=null "9lives"=false "false"="x"}>`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	back, err := parse.ParseSingle([]byte(got))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(n, back) {
		t.Errorf("round trip: %s", encode.MustString(back))
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		n    *ir.Node
		opts []encode.EncodeOption
	}{
		{name: "nan", n: ir.FromNumber(math.NaN())},
		{name: "inf", n: ir.FromNumber(math.Inf(1))},
		{name: "closer in text", n: ir.NewText("p", "", "has </#> inside")},
		{name: "alt closer in text", n: ir.NewText("p", "m", "has <#m> inside")},
		{name: "bad marker", n: ir.NewText("p", "not ok", "x")},
		{name: "bad tag", n: ir.NewElement("no tag")},
		{name: "comment closer", n: ir.Comment("a --> b")},
		{name: "bad indent", n: ir.NewElement("a"), opts: []encode.EncodeOption{encode.Pretty(true), encode.IndentString("--")}},
		{name: "extend tag mismatch", n: &ir.Node{Type: ir.ExtendType, Keys: []string{"a"}, Values: []*ir.Node{ir.NewElement("b")}}},
	}
	for _, tc := range tests {
		_, err := encode.String(tc.n, tc.opts...)
		if !errors.Is(err, encode.ErrEncoding) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
	// another marker avoids the closer
	if _, err := encode.String(ir.NewText("p", "m", "has </#> inside")); err != nil {
		t.Errorf("marker m: %v", err)
	}
}

func TestEncodeJSON(t *testing.T) {
	n, err := parse.ParseSingle([]byte(`<msg role="user" {n=1} [<p #>hi</#> true] (<meta {k=null}>)>`))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	var got any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"tag":        "msg",
		"metadata":   map[string]any{"role": "user"},
		"attributes": map[string]any{"n": 1.0},
		"body": []any{
			map[string]any{"tag": "p", "metadata": map[string]any{}, "text": "hi", "textMarker": ""},
			true,
		},
		"extend": map[string]any{
			"order": []any{"meta"},
			"children": map[string]any{
				"meta": map[string]any{"tag": "meta", "metadata": map[string]any{}, "attributes": map[string]any{"k": nil}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	doc, err := parse.Parse([]byte(`<a {k="v"}> <!-- dropped --> <b>`), parse.ParseComments(true))
	if err != nil {
		t.Fatal(err)
	}
	s, err := encode.DocumentString(doc, encode.EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"tag: a", "k: v", "tag: b"} {
		if !strings.Contains(s, want) {
			t.Errorf("yaml output lacks %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "dropped") {
		t.Errorf("comment leaked into yaml:\n%s", s)
	}
}

func TestColors(t *testing.T) {
	n := ir.NewElement("a").WithMeta("k", ir.FromString("v"))
	s, err := encode.String(n, encode.EncodeColors(encode.NewColors()))
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"a", "k", `"v"`} {
		if !strings.Contains(s, part) {
			t.Errorf("%q missing from %q", part, s)
		}
	}
}
