package debug

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
)

// Knot wraps a node so that it formats as compact knot with %s or %v.
type Knot struct{ *ir.Node }

func (k Knot) String() string {
	s, err := encode.String(k.Node)
	if err != nil {
		return fmt.Sprintf("[raw *ir.Node] %v", k.Node)
	}
	return s
}

// Logf writes a diagnostic line to stderr. Nodes are rendered as compact
// knot and plain maps and slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			s, err := encode.String(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = s
		case *ir.Document:
			s, err := encode.DocumentString(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Document] %v", x)
				continue
			}
			args[i] = s
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
