package mutation

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
)

// LineOp marks a line of a text diff.
type LineOp byte

const (
	LineEqual  LineOp = ' '
	LineDelete LineOp = '-'
	LineInsert LineOp = '+'
)

type Line struct {
	Op   LineOp
	Text string
}

func (l Line) String() string {
	return string(l.Op) + " " + l.Text
}

// TextDiff formats a and b in pretty form and returns their line diff.
func TextDiff(a, b *ir.Node, opts ...encode.EncodeOption) ([]Line, error) {
	opts = append([]encode.EncodeOption{encode.Pretty(true)}, opts...)
	as, err := encode.String(a, opts...)
	if err != nil {
		return nil, err
	}
	bs, err := encode.String(b, opts...)
	if err != nil {
		return nil, err
	}
	return LineDiff(as, bs), nil
}

// LineDiff diffs two texts line by line.
func LineDiff(a, b string) []Line {
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a+"\n", b+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)
	var res []Line
	for _, d := range diffs {
		op := LineEqual
		switch d.Type {
		case diffpatch.DiffDelete:
			op = LineDelete
		case diffpatch.DiffInsert:
			op = LineInsert
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return res
}

// FormatLines joins lines with newlines.
func FormatLines(lines []Line) string {
	buf := &strings.Builder{}
	for _, l := range lines {
		buf.WriteString(l.String())
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Changed reports whether lines hold an insertion or deletion.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != LineEqual {
			return true
		}
	}
	return false
}
