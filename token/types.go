package token

import (
	"fmt"
)

type TokenType int

const (
	TEOF TokenType = iota
	TLAngle
	TRAngle
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TLParen
	TRParen
	TEquals
	TComma
	THash
	TIdent
	TString
	TNumber
	TTrue
	TFalse
	TNull
	TComment
	TText
	TTextClose
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TEOF:       "TEOF",
		TLAngle:    "TLAngle",
		TRAngle:    "TRAngle",
		TLCurl:     "TLCurl",
		TRCurl:     "TRCurl",
		TLSquare:   "TLSquare",
		TRSquare:   "TRSquare",
		TLParen:    "TLParen",
		TRParen:    "TRParen",
		TEquals:    "TEquals",
		TComma:     "TComma",
		THash:      "THash",
		TIdent:     "TIdent",
		TString:    "TString",
		TNumber:    "TNumber",
		TTrue:      "TTrue",
		TFalse:     "TFalse",
		TNull:      "TNull",
		TComment:   "TComment",
		TText:      "TText",
		TTextClose: "TTextClose",
	}[t]
}

// IsKeyword reports whether t is one of the literal keywords.
func (t TokenType) IsKeyword() bool {
	switch t {
	case TTrue, TFalse, TNull:
		return true
	default:
		return false
	}
}

// Token is a lexeme with its position. Bytes holds the source bytes,
// including quotes for strings and delimiters for comments.
type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// End returns the offset just past the token.
func (t *Token) End() int {
	return t.Pos.I + len(t.Bytes)
}

// String returns the decoded value of the token: unquoted strings, comment
// contents without delimiters, and the source bytes otherwise.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		s, err := Unquote(t.Bytes)
		if err != nil {
			return string(t.Bytes)
		}
		return s
	case TComment:
		return string(t.Bytes[len(commentOpen) : len(t.Bytes)-len(commentClose)])
	default:
		return string(t.Bytes)
	}
}
