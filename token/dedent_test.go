package token

import "testing"

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		out  string
	}{
		{"inline", "hello", "hello"},
		{"empty", "", ""},
		{"four spaces", "\n    line one\n      line two\n    ", "line one\n  line two"},
		{"unindented closer", "\nabc\n", "abc"},
		{"blank first line kept when alone", "   ", "   "},
		{"closer on content line", "\n  a\n  b", "  a\n  b"},
		{"short line", "\n    a\n  \n    b\n    ", "a\n\nb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Dedent(tc.raw)
			if got != tc.out {
				t.Errorf("got %q want %q", got, tc.out)
			}
		})
	}
}

func TestIndentDedent(t *testing.T) {
	texts := []string{
		"a\nb",
		"a\n",
		"\na",
		" \nb",
		"  nested\n    more\nless",
		"x\n ",
		"a\n\n\nb",
	}
	for _, indent := range []string{"", "  ", "\t\t"} {
		for _, text := range texts {
			got := Dedent(Indent(text, indent))
			if got != text {
				t.Errorf("indent %q: %q came back as %q", indent, text, got)
			}
		}
	}
}
