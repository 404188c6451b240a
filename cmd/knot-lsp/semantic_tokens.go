package main

import (
	"context"
	"strings"

	"github.com/knot-format/go-knot/token"
	"go.lsp.dev/protocol"
)

// indexes into tokenLegend.TokenTypes
const (
	semComment uint32 = iota
	semKeyword
	semString
	semNumber
	semOperator
	semProperty
	semType
)

const modDefinition uint32 = 1

type semToken struct {
	start, end int
	typ        uint32
	mods       uint32
}

// classify assigns semantic types to the tokens of a document. Tags are
// types, metadata and attribute keys are properties, text markers and the
// text of text elements are keywords and strings. Scanning stops at the
// first lexical error.
func classify(content string) []semToken {
	toks, _ := token.Tokenize([]byte(content))
	var res []semToken
	for i := range toks {
		t := &toks[i]
		st := semToken{start: t.Pos.I, end: t.End()}
		var prev, next token.TokenType = -1, -1
		if i > 0 {
			prev = toks[i-1].Type
		}
		if i+1 < len(toks) {
			next = toks[i+1].Type
		}
		switch t.Type {
		case token.TComment:
			st.typ = semComment
		case token.TString, token.TText:
			st.typ = semString
		case token.TNumber:
			st.typ = semNumber
		case token.TTrue, token.TFalse, token.TNull:
			st.typ = semKeyword
		case token.TIdent:
			switch {
			case prev == token.TLAngle:
				st.typ = semType
				st.mods = modDefinition
			case prev == token.THash:
				st.typ = semKeyword
			case next == token.TEquals:
				st.typ = semProperty
			default:
				st.typ = semKeyword
			}
		case token.TEOF:
			continue
		default:
			st.typ = semOperator
		}
		res = append(res, st)
	}
	return res
}

// encodeTokens produces the relative encoding of LSP semantic tokens for
// those of toks within [from, to). Tokens spanning lines are split.
func encodeTokens(content string, toks []semToken, from, to int) []uint32 {
	data := []uint32{}
	var lastLine, lastChar uint32
	emit := func(start, end int, typ, mods uint32) {
		pos := lspPosition(content, start)
		length := utf16Len(content[start:end])
		if length == 0 {
			return
		}
		deltaLine := pos.Line - lastLine
		deltaChar := pos.Character
		if deltaLine == 0 {
			deltaChar -= lastChar
		}
		data = append(data, deltaLine, deltaChar, uint32(length), typ, mods)
		lastLine, lastChar = pos.Line, pos.Character
	}
	for _, t := range toks {
		if t.end <= from || t.start >= to {
			continue
		}
		start := t.start
		for start < t.end {
			end := t.end
			if nl := strings.IndexByte(content[start:t.end], '\n'); nl != -1 {
				end = start + nl
			}
			emit(start, end, t.typ, t.mods)
			start = end + 1
		}
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	data := encodeTokens(doc.content, classify(doc.content), 0, len(doc.content))
	return &protocol.SemanticTokens{Data: data}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}
	from := offset(doc.content, params.Range.Start)
	to := offset(doc.content, params.Range.End)
	data := encodeTokens(doc.content, classify(doc.content), from, to)
	return &protocol.SemanticTokens{Data: data}, nil
}
