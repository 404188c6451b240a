package main

import (
	"context"
	"errors"
	"sync"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/loader"
	"github.com/knot-format/go-knot/parse"
	"github.com/knot-format/go-knot/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is an open text document with the result of its last parse.
// parsed is nil if parsing failed with err.
type document struct {
	uri       string
	content   string
	version   int32
	parsed    *ir.Document
	positions map[*ir.Node]*token.Pos
	warnings  []ir.Warning
	err       error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) *document {
	doc := &document{
		uri:       uri,
		content:   content,
		version:   version,
		positions: make(map[*ir.Node]*token.Pos),
	}
	parsed, err := parse.Parse([]byte(content),
		parse.ParseComments(true),
		parse.ParsePositions(doc.positions),
		parse.ParseWarnings(&doc.warnings))
	if err != nil {
		doc.err = err
	} else {
		doc.parsed = parsed
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = doc
	return doc
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, doc *document) {
	diagnostics := validateDocument(doc)
	s.log.Debug("diagnostics", "uri", doc.uri, "version", doc.version, "count", len(diagnostics))
	if s.conn == nil {
		return
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(doc.uri),
		Version:     uint32(doc.version),
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.log.Error("publishing diagnostics", "uri", doc.uri, "error", err)
	}
}

// validateDocument reports parse errors, parse warnings and prototype
// resolution errors and warnings.
func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err != nil {
		d := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  doc.err.Error(),
			Source:   lsName,
		}
		var pe *parse.Error
		if errors.As(doc.err, &pe) && pe.Pos != nil {
			d.Code = string(pe.Code)
			d.Range = lspRange(doc.content, pe.Pos.I, pe.Pos.I+1)
		}
		return append(diagnostics, d)
	}
	for _, w := range doc.warnings {
		diagnostics = append(diagnostics, warningDiagnostic(doc, w))
	}
	b, err := loader.New(loader.WithPositions(doc.positions)).ResolveDocuments(doc.parsed)
	if err != nil {
		d := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  err.Error(),
			Source:   lsName,
		}
		var le *loader.Error
		if errors.As(err, &le) {
			d.Code = string(le.Code)
			if n := findReference(doc.parsed, le.Tag, le.Name); n != nil {
				if pos := doc.positions[n]; pos != nil {
					d.Range = lspRange(doc.content, pos.I, pos.I+1+len(n.Tag))
				}
			}
		}
		return append(diagnostics, d)
	}
	for _, w := range b.Resolved[0].Warnings {
		if w.Code == ir.DuplicatePrototype {
			diagnostics = append(diagnostics, warningDiagnostic(doc, w))
		}
	}
	return diagnostics
}

func warningDiagnostic(doc *document, w ir.Warning) protocol.Diagnostic {
	d := protocol.Diagnostic{
		Severity: protocol.DiagnosticSeverityWarning,
		Code:     string(w.Code),
		Message:  w.Msg,
		Source:   lsName,
	}
	if w.Line > 0 {
		pd := token.NewPosDoc([]byte(doc.content))
		off := pd.Offset(w.Line, w.Col)
		d.Range = lspRange(doc.content, off, off+1+len(w.Tag))
	}
	return d
}

// findReference returns the first element tagged tag which refers to the
// prototype name, or any element tagged tag if name is empty.
func findReference(doc *ir.Document, tag, name string) *ir.Node {
	var res *ir.Node
	for _, n := range doc.Nodes {
		ir.Walk(n, func(_ npath.Path, y *ir.Node) bool {
			if res != nil {
				return false
			}
			if !y.Type.IsElement() || y.Tag != tag {
				return true
			}
			if p, _ := y.MetaString(loader.KeyProto); name == "" || p == name {
				res = y
				return false
			}
			return true
		})
		if res != nil {
			break
		}
	}
	return res
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.log.Debug("open", "uri", uri)
	doc := s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := s.docs.get(uri)
	if doc == nil {
		s.log.Warn("change of unknown document", "uri", uri)
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		r := change.Range
		if r == (protocol.Range{}) && change.RangeLength == 0 {
			content = change.Text
			continue
		}
		start := offset(content, r.Start)
		end := max(offset(content, r.End), start)
		content = content[:start] + change.Text + content[end:]
	}

	doc = s.docs.put(uri, content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, doc)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.remove(uri)
	if s.conn != nil {
		// clear diagnostics of the closed document
		err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
		if err != nil {
			s.log.Error("clearing diagnostics", "uri", uri, "error", err)
		}
	}
	return nil
}
