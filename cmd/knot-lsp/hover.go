package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/loader"
	"github.com/knot-format/go-knot/token"
	"go.lsp.dev/protocol"
)

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.parsed == nil {
		return nil, nil
	}

	off := offset(doc.content, params.Position)
	p, n := elementAt(doc.parsed, doc.positions, off)
	if n == nil {
		return nil, nil
	}
	hoverText := buildHoverText(p, n)

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText,
		},
	}, nil
}

// elementAt returns the element starting last at or before off, with its
// document path.
func elementAt(doc *ir.Document, positions map[*ir.Node]*token.Pos, off int) (npath.Path, *ir.Node) {
	var (
		bestPath npath.Path
		bestNode *ir.Node
		bestOff  = -1
	)
	for i, n := range doc.Nodes {
		ir.Walk(n, func(p npath.Path, y *ir.Node) bool {
			if !y.Type.IsElement() {
				return true
			}
			pos := positions[y]
			if pos == nil || pos.I > off {
				return true
			}
			if pos.I > bestOff {
				bestOff = pos.I
				bestNode = y
				bestPath = npath.Path{npath.Index(i)}.Append(p...)
			}
			return true
		})
	}
	return bestPath, bestNode
}

func buildHoverText(p npath.Path, n *ir.Node) string {
	var parts []string
	kind := "element"
	if n.Type == ir.TextType {
		kind = "text element"
	}
	parts = append(parts, fmt.Sprintf("**%s** `<%s>`", kind, n.Tag))
	if id, ok := n.ID(); ok {
		parts = append(parts, fmt.Sprintf("**Id:** `%s`", npath.Unique(id)))
	}
	parts = append(parts, fmt.Sprintf("**Path:** `%s`", p))
	if proto, ok := n.MetaString(loader.KeyProto); ok {
		parts = append(parts, fmt.Sprintf("**Prototype:** `%s` `%s`", n.Tag, proto))
	}
	var sections []string
	if n.Metadata != nil && len(n.Metadata.Keys) > 0 {
		sections = append(sections, fmt.Sprintf("%d metadata keys", len(n.Metadata.Keys)))
	}
	if n.Attributes != nil {
		sections = append(sections, fmt.Sprintf("%d attributes", len(n.Attributes.Keys)))
	}
	if n.Body != nil {
		sections = append(sections, fmt.Sprintf("body of %d", len(n.Body.Values)))
	}
	if n.Extend != nil {
		sections = append(sections, fmt.Sprintf("extend (%s)", strings.Join(n.Extend.Keys, ", ")))
	}
	if n.Type == ir.TextType {
		sections = append(sections, fmt.Sprintf("%d bytes of text", len(n.Text)))
	}
	if len(sections) > 0 {
		parts = append(parts, strings.Join(sections, "; "))
	}
	return strings.Join(parts, "\n\n")
}
