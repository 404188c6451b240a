package mutation_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/mutation"
)

func plainJSON(t *testing.T, n *ir.Node) any {
	t.Helper()
	d, err := json.Marshal(ir.ToPlain(n))
	if err != nil {
		t.Fatal(err)
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestJSONPatchMatchesApply(t *testing.T) {
	for _, tc := range diffPairs {
		if tc.noJSON {
			continue
		}
		t.Run(tc.name, func(t *testing.T) {
			a, b := mustParse(t, tc.a), mustParse(t, tc.b)
			muts, err := mutation.Diff(a, b, nil)
			if err != nil {
				t.Fatal(err)
			}
			checkJSONPatch(t, a, muts, b)
		})
	}
}

func checkJSONPatch(t *testing.T, a *ir.Node, muts []mutation.Mutation, want *ir.Node) {
	t.Helper()
	before := plainJSON(t, a)
	patch, err := mutation.JSONPatch(a, muts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, plainJSON(t, a)); diff != "" {
		t.Fatalf("JSONPatch modified its input:\n%s", diff)
	}
	out, err := mutation.PatchPlain(a, patch)
	if err != nil {
		t.Fatalf("patch %s: %v", patch, err)
	}
	var got any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(plainJSON(t, want), got); diff != "" {
		t.Errorf("patch %s (-want +got):\n%s", patch, diff)
	}
}

func TestJSONPatchHandWritten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		muts []mutation.Mutation
	}{
		{
			name: "move in a list",
			in:   `<a [1 2 3]>`,
			muts: []mutation.Mutation{{Kind: mutation.TreeMove, PathBefore: npath.MustParse(":body::0"), Path: npath.MustParse(":body::2")}},
		},
		{
			name: "insert into extend by position",
			in:   `<a (<x> <y>)>`,
			muts: []mutation.Mutation{{Kind: mutation.TreeAdd, Path: npath.MustParse(":extend::1"), ValueAfter: mustParse(t, `<z k=1>`)}},
		},
		{
			name: "add below missing containers",
			in:   `<a>`,
			muts: []mutation.Mutation{{Kind: mutation.ObjectAdd, Path: npath.MustParse(":attributes::'m'::'k'"), ValueAfter: ir.Null()}},
		},
		{
			name: "address by id",
			in:   `<a [<b id="t" [1]>]>`,
			muts: []mutation.Mutation{
				{Kind: mutation.TreeAdd, Path: npath.MustParse("#t:body::0"), ValueAfter: ir.FromInt(0)},
				{Kind: mutation.ObjectDelete, Path: npath.MustParse("#t:metadata")},
			},
		},
		{
			name: "data element becomes text",
			in:   `<a [<p>]>`,
			muts: []mutation.Mutation{{Kind: mutation.TreeUpdate, Path: npath.MustParse(":body::0:text"), ValueAfter: ir.FromString("hi")}},
		},
		{
			name: "keys needing escapes",
			in:   `<a {"x/y"=1 "m~n"=2}>`,
			muts: []mutation.Mutation{
				{Kind: mutation.ObjectUpdate, Path: npath.MustParse(":attributes::'x/y'"), ValueAfter: ir.FromInt(3)},
				{Kind: mutation.ObjectDelete, Path: npath.MustParse(":attributes::'m~n'")},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := mustParse(t, tc.in)
			want, err := mutation.Apply(a.Clone(), tc.muts)
			if err != nil {
				t.Fatal(err)
			}
			checkJSONPatch(t, a, tc.muts, want)
		})
	}
}

func TestJSONPatchNull(t *testing.T) {
	ops, err := mutation.JSONPatchOps(mustParse(t, `{}`), []mutation.Mutation{
		{Kind: mutation.ObjectAdd, Path: npath.MustParse("::'k'"), ValueAfter: ir.Null()},
	})
	if err != nil {
		t.Fatal(err)
	}
	d, err := json.Marshal(ops)
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(d, &got); err != nil {
		t.Fatal(err)
	}
	want := []map[string]any{{"op": "add", "path": "/k", "value": nil}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
