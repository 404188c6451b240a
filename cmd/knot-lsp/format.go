package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/knot-format/go-knot/encode"
	"go.lsp.dev/protocol"
)

// Formatting replaces the whole document with its pretty form.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.parsed == nil {
		return nil, nil
	}

	opts := []encode.EncodeOption{encode.Pretty(true)}
	switch {
	case !params.Options.InsertSpaces:
		opts = append(opts, encode.IndentString("\t"))
	case params.Options.TabSize > 0:
		opts = append(opts, encode.Indent(int(params.Options.TabSize)))
	}
	var buf bytes.Buffer
	if err := encode.EncodeDocument(doc.parsed, &buf, opts...); err != nil {
		s.log.Warn("formatting", "uri", doc.uri, "error", err)
		return nil, nil
	}
	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}
	if !strings.HasSuffix(doc.content, "\n") && strings.HasSuffix(formatted, "\n") && formatted[:len(formatted)-1] == doc.content {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{
		{
			Range:   lspRange(doc.content, 0, len(doc.content)),
			NewText: formatted,
		},
	}, nil
}
