package encode

import (
	"github.com/knot-format/go-knot/ir"
)

func MustString(node *ir.Node) string {
	s, err := String(node)
	if err != nil {
		panic(err)
	}
	return s
}
