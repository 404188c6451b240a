package encode

import (
	"strings"

	"github.com/knot-format/go-knot/ir"

	"github.com/fatih/color"
)

// Colorable selects the color of one lexical part of a node of a type.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	TagColor
	KeyColor
	ValueColor
	SepColor
	MarkerColor
	TextColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

type rgb struct{ r, g, b int }

// palette applies to elements and text elements alike; map keys and the
// punctuation of lists and maps have their own entries.
var palette = []struct {
	types []ir.Type
	attr  ColorAttr
	rgb   rgb
}{
	{[]ir.Type{ir.ElementType, ir.TextType}, TagColor, rgb{196, 96, 16}},
	{[]ir.Type{ir.ElementType, ir.TextType}, KeyColor, rgb{196, 168, 128}},
	{[]ir.Type{ir.ElementType, ir.TextType, ir.ExtendType, ir.ListType}, SepColor, rgb{255, 0, 196}},
	{[]ir.Type{ir.MapType}, KeyColor, rgb{128, 168, 196}},
	{[]ir.Type{ir.MapType}, SepColor, rgb{196, 128, 128}},
	{[]ir.Type{ir.TextType}, MarkerColor, rgb{198, 198, 46}},
	{[]ir.Type{ir.TextType}, TextColor, rgb{88, 158, 86}},
	{[]ir.Type{ir.NumberType}, ValueColor, rgb{128, 216, 236}},
	{[]ir.Type{ir.NullType}, ValueColor, rgb{168, 0, 196}},
	{[]ir.Type{ir.StringType}, ValueColor, rgb{8, 196, 16}},
}

// NewColors returns the default terminal colors. Whether anything is
// colored at all follows color.NoColor.
func NewColors() *Colors {
	c := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, p := range palette {
		f := color.RGB(p.rgb.r, p.rgb.g, p.rgb.b).SprintfFunc()
		for _, t := range p.types {
			c.Set(t, p.attr, f)
		}
	}
	c.Set(ir.BoolType, ValueColor, color.CyanString)
	c.Set(ir.CommentType, CommentColor, color.BlueString)
	return c
}

// Set colors attribute a of nodes of type t with f. The string passed to
// f is never interpreted as a format.
func (c *Colors) Set(t ir.Type, a ColorAttr, f func(string, ...any) string) {
	c.Map[Colorable{Type: t, Attr: a}] = func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
