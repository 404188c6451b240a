package encode

import (
	"strings"

	"github.com/knot-format/go-knot/format"
)

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// FormatSuffix returns the file extension for the given format.
func FormatSuffix(f format.Format) string {
	switch f {
	case format.JSONFormat:
		return ".json"
	case format.YAMLFormat:
		return ".yaml"
	default:
		return ".knot"
	}
}

// Pretty puts each entry on its own line, indenting nested levels.
func Pretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

// Indent sets the indent unit of pretty output to n spaces.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = strings.Repeat(" ", max(n, 0)) }
}

// IndentString sets the indent unit of pretty output. It must consist of
// spaces and tabs.
func IndentString(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
