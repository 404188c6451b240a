package debug_test

import (
	"fmt"
	"testing"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
)

func TestKnot(t *testing.T) {
	n := ir.NewElement("a").WithMeta("k", ir.FromNumber(1))
	if got := fmt.Sprintf("into %s", debug.Knot{Node: n}); got != "into <a k=1>" {
		t.Errorf("got %q", got)
	}
}
