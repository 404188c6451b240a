package loader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/loader"
	"github.com/knot-format/go-knot/parse"
	"github.com/knot-format/go-knot/token"
)

func docString(t *testing.T, doc *ir.Document) string {
	t.Helper()
	s, err := encode.DocumentString(doc)
	require.NoError(t, err)
	return s
}

func TestPrototypeRemove(t *testing.T) {
	src := `
<Prefabs [
  <Flow export="main" [
    <step id="s1">
    <step id="removeMe">
    <step id="s2">
  ]>
]>
<Flow proto="main" [
  <step id="removeMe" remove>
]>`
	b, err := loader.BatchLoad([]loader.Source{{Name: "flow.knot", Data: []byte(src)}})
	require.NoError(t, err)
	require.Len(t, b.Resolved, 1)

	doc := b.Resolved[0]
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, `<Flow [<step id="s1"> <step id="s2">]>`, encode.MustString(doc.Nodes[1]))

	proto := b.Exports.Get("Flow", "main")
	require.NotNil(t, proto)
	assert.Equal(t, `<Flow [<step id="s1"> <step id="removeMe"> <step id="s2">]>`, encode.MustString(proto))

	// the Prefabs container is resolved too, without directives
	assert.Equal(t, `<Prefabs [<Flow [<step id="s1"> <step id="removeMe"> <step id="s2">]>]>`, encode.MustString(doc.Nodes[0]))
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		proto string
		child string
		want  string
	}{
		{
			name:  "metadata and attributes",
			proto: `<card export="c" color="red" size=1 {style={bold=true under=false} n=1}>`,
			child: `<card proto="c" size=2 {style={under=true} m=2}>`,
			want:  `<card color="red" size=2 {style={bold=true under=true} n=1 m=2}>`,
		},
		{
			name:  "body replace by id and append",
			proto: `<list export="l" [<i id="a" v=1> "text" <i id="b" v=1>]>`,
			child: `<list proto="l" [<i id="b" v=2> <i id="c">]>`,
			want:  `<list [<i id="a" v=1> "text" <i id="b" v=2> <i id="c">]>`,
		},
		{
			name:  "body remove by value",
			proto: `<list export="l" [<i id="a"> <i id="b">]>`,
			child: `<list proto="l" [<x remove="a">]>`,
			want:  `<list [<i id="b">]>`,
		},
		{
			name:  "remove of a missing id",
			proto: `<list export="l" [<i id="a">]>`,
			child: `<list proto="l" [<i id="zz" remove>]>`,
			want:  `<list [<i id="a">]>`,
		},
		{
			name:  "extend replace append remove",
			proto: `<panel export="p" (<header v=1> <body> <footer>)>`,
			child: `<panel proto="p" (<footer remove> <header v=2> <aside>)>`,
			want:  `<panel (<header v=2> <body> <aside>)>`,
		},
		{
			name:  "text replaces text",
			proto: `<note export="n" kind="x" #>old</#>`,
			child: `<note proto="n" #>new</#>`,
			want:  `<note kind="x" #>new</#>`,
		},
		{
			name:  "text inherited",
			proto: `<note export="n" #>old</#>`,
			child: `<note proto="n" kind="y">`,
			want:  `<note kind="y" #>old</#>`,
		},
		{
			name:  "sections inherited",
			proto: `<w export="w" {a=1} [1] (<x>)>`,
			child: `<w proto="w" extendType="Override">`,
			want:  `<w {a=1} [1] (<x>)>`,
		},
		{
			name:  "name and id name prototypes",
			proto: `<w name="byName" [1]> <w id="byID" [2]>`,
			child: `<w proto="byName"> <w proto="byID">`,
			want:  `<w name="byName" [1]>` + "\n" + `<w id="byID" [2]>`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := "<Prefabs [" + tc.proto + "]>\n" + tc.child
			doc, err := loader.LoadDocument([]byte(src), loader.DropPrefabs(true))
			require.NoError(t, err)
			assert.Equal(t, tc.want, docString(t, doc))
		})
	}
}

func TestPrototypeChain(t *testing.T) {
	src := `
<Prefabs [
  <btn name="base" {color="grey" size=1}>
  <btn name="primary" proto="base" {color="blue"}>
]>
<btn proto="primary" {size=2}>`
	doc, err := loader.LoadDocument([]byte(src), loader.DropPrefabs(true))
	require.NoError(t, err)
	assert.Equal(t, `<btn name="primary" {color="blue" size=2}>`, docString(t, doc))
}

func TestExportedOutsidePrefabs(t *testing.T) {
	src := `
<root [
  <tool export="search" {limit=10}>
]>
<tool proto="search" {limit=5}>`
	b, err := loader.BatchLoad([]loader.Source{{Data: []byte(src)}})
	require.NoError(t, err)
	assert.Equal(t, "<root [<tool {limit=10}>]>\n<tool {limit=5}>", docString(t, b.Resolved[0]))
	require.NotNil(t, b.Exports.Get("tool", "search"))
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code loader.Code
	}{
		{"unknown", `<a proto="nope">`, loader.UnknownPrototype},
		{"wrong tag", `<Prefabs [<a name="x">]> <b proto="x">`, loader.UnknownPrototype},
		{"extend type", `<Prefabs [<a name="x">]> <a proto="x" extendType="Merge">`, loader.UnsupportedExtendType},
		{"extend type without proto", `<a extendType=1>`, loader.UnsupportedExtendType},
		{"cycle", `<Prefabs [<a name="x" proto="y"> <a name="y" proto="x">]>`, loader.Cycle},
		{"self", `<Prefabs [<a name="x" proto="x">]>`, loader.Cycle},
		{"nested unknown", `<a [<b [<c proto="missing">]>]>`, loader.UnknownPrototype},
		{"parse", `<a`, loader.Parse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.LoadDocument([]byte(tc.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, loader.ErrLoad)
			assert.ErrorIs(t, err, &loader.Error{Code: tc.code})
		})
	}
	_, err := loader.LoadDocument([]byte(`<a`))
	assert.ErrorIs(t, err, parse.ErrParse)

	var le *loader.Error
	_, err = loader.LoadDocument([]byte(`<a proto="nope">`))
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "a", le.Tag)
	assert.Equal(t, "nope", le.Name)
}

func TestDuplicatePrototype(t *testing.T) {
	src := "<Prefabs [\n  <a name=\"x\" v=1>\n  <a name=\"x\" v=2>\n]>\n<a proto=\"x\">"
	doc, err := loader.LoadDocument([]byte(src), loader.DropPrefabs(true))
	require.NoError(t, err)
	assert.Equal(t, `<a name="x" v=2>`, docString(t, doc))
	require.Len(t, doc.Warnings, 1)
	w := doc.Warnings[0]
	assert.Equal(t, ir.DuplicatePrototype, w.Code)
	assert.Equal(t, "a", w.Tag)
	assert.Equal(t, 3, w.Line)
	assert.Equal(t, 3, w.Col)
}

func TestResolveDocumentsPositions(t *testing.T) {
	src := "<Prefabs [\n  <a name=\"x\" v=1>\n  <a name=\"x\" v=2>\n]>"
	positions := map[*ir.Node]*token.Pos{}
	doc, err := parse.Parse([]byte(src), parse.ParsePositions(positions))
	require.NoError(t, err)

	b, err := loader.New().ResolveDocuments(doc)
	require.NoError(t, err)
	require.Len(t, b.Resolved[0].Warnings, 1)
	assert.Zero(t, b.Resolved[0].Warnings[0].Line)

	b, err = loader.New(loader.WithPositions(positions)).ResolveDocuments(doc)
	require.NoError(t, err)
	require.Len(t, b.Resolved[0].Warnings, 1)
	w := b.Resolved[0].Warnings[0]
	assert.Equal(t, ir.DuplicatePrototype, w.Code)
	assert.Equal(t, 3, w.Line)
	assert.Equal(t, 3, w.Col)
}

func TestBatchSharesPrototypes(t *testing.T) {
	l := loader.New()
	b, err := l.BatchLoad(
		loader.Source{Name: "protos", Data: []byte(`<Prefabs [<msg name="hi" {text="hello"}>]>`)},
		loader.Source{Name: "use", Data: []byte(`<msg proto="hi" {to="you"}>`)},
	)
	require.NoError(t, err)
	require.Len(t, b.Resolved, 2)
	assert.Equal(t, `<msg name="hi" {text="hello" to="you"}>`, docString(t, b.Resolved[1]))

	// a later batch imports the exports of the first
	l2 := loader.New()
	l2.Import(b.Exports)
	doc, err := l2.LoadDocument([]byte(`<msg proto="hi">`))
	require.NoError(t, err)
	assert.Equal(t, `<msg name="hi" {text="hello"}>`, docString(t, doc))

	// local prototypes win over imported ones
	doc, err = l2.LoadDocument([]byte(`<Prefabs [<msg name="hi" {text="hey"}>]> <msg proto="hi">`))
	require.NoError(t, err)
	assert.Equal(t, `<msg name="hi" {text="hey"}>`, encode.MustString(doc.Nodes[1]))
	assert.Empty(t, doc.Warnings)

	// without the import the reference fails
	_, err = loader.New().LoadDocument([]byte(`<msg proto="hi">`))
	assert.ErrorIs(t, err, &loader.Error{Code: loader.UnknownPrototype})
}

func TestResolveDocumentsLeavesInput(t *testing.T) {
	src := `<Prefabs [<a name="x" [<i id="1"> <i id="2">]>]> <a proto="x" [<i id="1" remove>]>`
	doc, err := parse.Parse([]byte(src))
	require.NoError(t, err)
	before := docString(t, doc)

	b, err := loader.New().ResolveDocuments(doc)
	require.NoError(t, err)
	assert.Equal(t, before, docString(t, doc))
	assert.Equal(t, `<a name="x" [<i id="2">]>`, encode.MustString(b.Resolved[0].Nodes[1]))

	// outputs do not share nodes with the exports
	b.Resolved[0].Nodes[1].Body.Values[0].Tag = "changed"
	assert.Equal(t, `<a name="x" [<i id="1"> <i id="2">]>`, encode.MustString(b.Exports.Get("a", "x")))
}

func TestDirectivesNeverSurvive(t *testing.T) {
	src := `
<Prefabs [<a name="x" export [<i id="k">]>]>
<a proto="x" extendType="Override" {m=<a proto="x" remove>} [<i id="k" remove> <j remove>] (<t remove>)>
<z remove>`
	doc, err := loader.LoadDocument([]byte(src))
	require.NoError(t, err)
	for _, n := range doc.Nodes {
		ir.Walk(n, func(_ npath.Path, y *ir.Node) bool {
			if !y.Type.IsElement() {
				return true
			}
			for _, k := range []string{loader.KeyProto, loader.KeyExtendType, loader.KeyExport, loader.KeyRemove} {
				assert.Nil(t, y.MetaGet(k), "%s in %s", k, encode.MustString(y))
			}
			return true
		})
	}
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, `<a name="x" {m=<a name="x" [<i id="k">]>} [] ()>`, encode.MustString(doc.Nodes[1]))
}

func TestExportsDocument(t *testing.T) {
	b, err := loader.BatchLoad([]loader.Source{{Data: []byte(`<Prefabs [<b name="y"> <a name="x">]>`)}})
	require.NoError(t, err)
	doc := b.Exports.Document()
	assert.Equal(t, `<a name="x" export="x">`+"\n"+`<b name="y" export="y">`, docString(t, doc))

	again, err := loader.New().ResolveDocuments(doc)
	require.NoError(t, err)
	assert.Len(t, again.Exports, 2)
}
