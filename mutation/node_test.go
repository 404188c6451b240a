package mutation_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/mutation"
)

func TestEncodeDecode(t *testing.T) {
	a := mustParse(t, `<a x=1 {k=1} [1 2 <p #>t</#>] (<q> <r>)>`)
	b := mustParse(t, `<a x=2 [2] (<r> <s>)>`)
	muts, err := mutation.Diff(a, b, npath.MustParse("#top"))
	if err != nil {
		t.Fatal(err)
	}
	muts = append(muts,
		mutation.Mutation{
			Kind:       mutation.TreeMove,
			PathBefore: npath.MustParse(":body::0"),
			Path:       npath.MustParse(":body::1"),
		},
		mutation.Mutation{
			Kind:        mutation.TreeDelete,
			Path:        npath.MustParse("::0"),
			ValueBefore: ir.Comment(" has </#> inside "),
		},
		mutation.Mutation{
			Kind:        mutation.TreeUpdate,
			Path:        npath.MustParse(":extend"),
			ValueBefore: mustParse(t, `<a (<q>)>`).Extend,
			ValueAfter:  ir.NewExtend(),
		},
	)
	for _, pretty := range []bool{false, true} {
		buf := bytes.NewBuffer(nil)
		if err := mutation.Encode(muts, buf, encode.Pretty(pretty)); err != nil {
			t.Fatal(err)
		}
		back, err := mutation.Decode(buf.Bytes())
		if err != nil {
			t.Fatalf("decode %s: %v", buf, err)
		}
		got, want := mutStrings(back), mutStrings(muts)
		if strings.Join(got, "\n") != strings.Join(want, "\n") {
			t.Errorf("pretty=%t:\ngot\n%s\nwant\n%s", pretty, strings.Join(got, "\n"), strings.Join(want, "\n"))
		}
	}
}

func TestToNodeLayout(t *testing.T) {
	n, err := mutation.ToNode([]mutation.Mutation{
		{Kind: mutation.ObjectUpdate, Path: npath.MustParse(":attributes::'k'"), ValueBefore: ir.FromInt(1), ValueAfter: ir.FromInt(2)},
		{Kind: mutation.TreeMove, PathBefore: npath.MustParse("::0"), Path: npath.MustParse("::2")},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `<mutations [` +
		`<mutation kind="OBJECT_UPDATE" path=":attributes::'k'" (<before [1]> <after [2]>)> ` +
		`<mutation kind="TREE_MOVE" from="::0" path="::2">]>`
	if got := encode.MustString(n); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestFromNodeErrors(t *testing.T) {
	for _, in := range []string{
		`<muts>`,
		`<mutations [1]>`,
		`<mutations [<mutation path="">]>`,
		`<mutations [<mutation kind="TREE_ADD">]>`,
		`<mutations [<mutation kind="NOPE" path="">]>`,
		`<mutations [<mutation kind="TREE_MOVE" path="::0">]>`,
		`<mutations [<mutation kind="TREE_ADD" path=".x">]>`,
		`<mutations [<mutation kind="TREE_ADD" path="" (<after [1 2]>)>]>`,
		`<mutations [<mutation kind="TREE_ADD" path="" (<other [1]>)>]>`,
		`<mutations [<mutation kind="TREE_ADD" path="" (<after #>x</#>)>]>`,
	} {
		_, err := mutation.FromNode(mustParse(t, in))
		if !errors.Is(err, mutation.ErrMutation) {
			t.Errorf("%s: got %v", in, err)
		}
	}
	muts, err := mutation.FromNode(mustParse(t, `<mutations>`))
	if err != nil || len(muts) != 0 {
		t.Errorf("empty list: %v %v", muts, err)
	}
}
