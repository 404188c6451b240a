package token

import "strings"

// Dedent normalizes the raw body of a text element.
//
// When the body spans several lines and the last one holds only
// whitespace, that whitespace is the indentation of the closer: the line
// is dropped and the indentation is stripped from every other line. Then
// a leading whitespace-only line left by the opening newline is dropped.
func Dedent(raw string) string {
	lines := strings.Split(raw, "\n")
	indent := ""
	if n := len(lines); n > 1 && isBlank(lines[n-1]) {
		indent = lines[n-1]
		lines = lines[:n-1]
	}
	if indent != "" {
		for i, ln := range lines {
			lines[i] = ln[commonPrefix(ln, indent):]
		}
	}
	if len(lines) > 1 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// Indent is the inverse of Dedent for text written with its closer on a
// line of its own, indented by indent.
func Indent(text, indent string) string {
	var b strings.Builder
	b.WriteByte('\n')
	for _, ln := range strings.Split(text, "\n") {
		if ln != "" {
			b.WriteString(indent)
			b.WriteString(ln)
		}
		b.WriteByte('\n')
	}
	b.WriteString(indent)
	return b.String()
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\r") == ""
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
