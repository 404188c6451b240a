package npath

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		want  Path
		canon string
	}{
		{in: "", want: nil, canon: ""},
		{
			in:    "#container:extend::'header':attributes::'title'",
			want:  Path{Unique("container"), Property("extend"), Key("header"), Property("attributes"), Key("title")},
			canon: "#container:extend::'header':attributes::'title'",
		},
		{
			in:    ":body::0::2",
			want:  Path{Property("body"), Index(0), Index(2)},
			canon: ":body::0::2",
		},
		{
			in:    `::"dq key"::bare`,
			want:  Path{Key("dq key"), Key("bare")},
			canon: "::'dq key'::'bare'",
		},
		{
			in:    "#'id with space':text",
			want:  Path{Unique("id with space"), Property("text")},
			canon: "#'id with space':text",
		},
		{
			in:    `::'it\'s'`,
			want:  Path{Key("it's")},
			canon: `::'it\'s'`,
		},
		{
			in:    "#a#b",
			want:  Path{Unique("a"), Unique("b")},
			canon: "#a#b",
		},
	}
	for _, tc := range tests {
		p, err := Parse(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if !p.Equal(tc.want) {
			t.Errorf("%q: got %v want %v", tc.in, p, tc.want)
		}
		if got := p.String(); got != tc.canon {
			t.Errorf("%q: canonical %q want %q", tc.in, got, tc.canon)
		}
		again, err := Parse(p.String())
		if err != nil {
			t.Errorf("%q: reparse: %v", p.String(), err)
			continue
		}
		if !again.Equal(p) {
			t.Errorf("%q: reparse differs: %v", tc.in, again)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{".ns.path", ErrUnsupported},
		{"body", ErrSyntax},
		{"#", ErrSyntax},
		{":", ErrSyntax},
		{"::", ErrSyntax},
		{"::'open", ErrSyntax},
		{":9x", ErrSyntax},
	}
	for _, tc := range tests {
		_, err := Parse(tc.in)
		if !errors.Is(err, tc.err) {
			t.Errorf("%q: got %v want %v", tc.in, err, tc.err)
		}
	}
}

func TestPathOps(t *testing.T) {
	p := MustParse("#a:body::1")
	q := p.Append(Key("k"))
	if q.String() != "#a:body::1::'k'" {
		t.Errorf("append: %s", q)
	}
	if p.String() != "#a:body::1" {
		t.Errorf("append modified receiver: %s", p)
	}
	if !q.Parent().Equal(p) {
		t.Errorf("parent: %s", q.Parent())
	}
	last, ok := q.Last()
	if !ok || last != Key("k") {
		t.Errorf("last: %v %v", last, ok)
	}
	if !q.HasPrefix(p) || p.HasPrefix(q) {
		t.Error("prefix")
	}
	if Path(nil).Parent() != nil {
		t.Error("parent of empty path")
	}
}
