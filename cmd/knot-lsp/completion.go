package main

import (
	"context"
	"slices"
	"strings"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/loader"
	"go.lsp.dev/protocol"
)

var directiveDocs = map[string]string{
	loader.KeyProto:      "Inherit from the prototype with this tag and name.",
	loader.KeyExtendType: "How to inherit; only `\"Override\"` is supported.",
	loader.KeyExport:     "Export this element as a prototype, under a string name or its name or id.",
	loader.KeyName:       "Name of a prototype.",
	loader.KeyID:         "Unique id, addressed with `#id` in paths.",
	loader.KeyRemove:     "Remove the inherited child with this id, or this tag in extend blocks.",
}

func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	off := offset(doc.content, params.Position)
	completions := []protocol.CompletionItem{}

	switch completionContext(doc.content[:off]) {
	case inTagName:
		for _, tag := range knownTags(doc) {
			completions = append(completions, protocol.CompletionItem{
				Label: tag,
				Kind:  protocol.CompletionItemKindClass,
			})
		}
	case inMetadata:
		for _, key := range loader.Directives() {
			completions = append(completions, protocol.CompletionItem{
				Label:      key,
				Kind:       protocol.CompletionItemKindProperty,
				InsertText: key + "=",
				Documentation: protocol.MarkupContent{
					Kind:  protocol.Markdown,
					Value: directiveDocs[key],
				},
			})
		}
	}
	return &protocol.CompletionList{Items: completions}, nil
}

type completionKind int

const (
	noCompletion completionKind = iota
	inTagName
	inMetadata
)

// completionContext looks back from the end of before for the tag line of
// the innermost open element.
func completionContext(before string) completionKind {
	i := strings.LastIndexAny(before, "<>[]{}()#")
	if i == -1 || before[i] != '<' {
		return noCompletion
	}
	rest := before[i+1:]
	if !strings.ContainsAny(rest, " \t\n") {
		return inTagName
	}
	last := rest[len(rest)-1]
	if last == ' ' || last == '\t' || last == '\n' {
		return inMetadata
	}
	return noCompletion
}

// knownTags lists the tags of prototypes and elements of the last
// successful parse.
func knownTags(doc *document) []string {
	if doc.parsed == nil {
		return []string{loader.PrefabsTag}
	}
	seen := map[string]bool{loader.PrefabsTag: true}
	for _, n := range doc.parsed.Nodes {
		ir.Walk(n, func(_ npath.Path, y *ir.Node) bool {
			if y.Type.IsElement() {
				seen[y.Tag] = true
			}
			return true
		})
	}
	res := make([]string, 0, len(seen))
	for tag := range seen {
		res = append(res, tag)
	}
	slices.Sort(res)
	return res
}
