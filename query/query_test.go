package query_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/parse"
	"github.com/knot-format/go-knot/query"
)

const doc = `<root id="r" [
  <step id="s1" kind="a" {limit=3}>
  <step id="s2" kind="b" {limit=10} [<step id="s3" kind="a">]>
  <note #>hello</#>
  "plain"
] (<footer {limit=7}>)>`

func TestFind(t *testing.T) {
	root, err := parse.ParseSingle([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		q    string
		want []string
	}{
		{`tag == "step"`, []string{":body::0", ":body::1", ":body::1:body::0"}},
		{`metadata.kind == "a"`, []string{":body::0", ":body::1:body::0"}},
		{`id startsWith "s" && depth > 1`, []string{":body::1:body::0"}},
		{`(get(":attributes::'limit'") ?? 0) > 5`, []string{":body::1", ":extend::'footer'"}},
		{`(attributes.limit ?? 0) > 5`, []string{":body::1", ":extend::'footer'"}},
		{`isText && text == "hello"`, []string{":body::2"}},
		{`has("kind") && !has("missing")`, []string{":body::0", ":body::1", ":body::1:body::0"}},
		{`depth == 0`, []string{""}},
		{`path == ":extend::'footer'"`, []string{":extend::'footer'"}},
		{`false`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.q, func(t *testing.T) {
			q, err := query.Compile(tc.q)
			if err != nil {
				t.Fatal(err)
			}
			ms, err := q.Find(root)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, m := range ms {
				got = append(got, m.Path.String())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindDocument(t *testing.T) {
	// the comment takes index 1 of the document
	d, err := parse.Parse([]byte(`<a [<b>]> <!-- c --> <b>`), parse.ParseComments(true))
	if err != nil {
		t.Fatal(err)
	}
	ms, err := query.MustCompile(`tag == "b"`).FindDocument(d)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range ms {
		got = append(got, m.Path.String())
		r, err := d.Resolve(m.Path)
		if err != nil {
			t.Fatal(err)
		}
		if r != m.Node {
			t.Errorf("%s does not resolve to its match", m.Path)
		}
	}
	if diff := cmp.Diff([]string{"::0:body::0", "::2"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMatchNonElement(t *testing.T) {
	ok, err := query.MustCompile(`true`).Match(ir.FromInt(1), nil, 0)
	if err != nil || ok {
		t.Errorf("got %t, %v", ok, err)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`tag +`, `tag`, `nosuchfield == 1`} {
		if _, err := query.Compile(src); !errors.Is(err, query.ErrQuery) {
			t.Errorf("%q: got %v", src, err)
		}
	}
}
