package parse

import (
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/token"
)

type parseOpts struct {
	comments  bool
	positions map[*ir.Node]*token.Pos
	warnings  *[]ir.Warning
}

type ParseOption func(*parseOpts)

// ParseComments keeps top-level comments as CommentType nodes.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// ParsePositions records the start position of every parsed node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseWarnings appends the warnings found while parsing to w.
func ParseWarnings(w *[]ir.Warning) ParseOption {
	return func(o *parseOpts) { o.warnings = w }
}

// GetPositions extracts the positions map from the provided options.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}
