package parse

import (
	"errors"
	"fmt"

	"github.com/knot-format/go-knot/token"
)

var (
	ErrParse = errors.New("parse error")
)

// Code classifies parse errors.
type Code string

const (
	UnexpectedEOF    Code = "UNEXPECTED_EOF"
	MismatchedMarker Code = "MISMATCHED_MARKER"
	InvalidContent   Code = "INVALID_CONTENT"
	InvalidLiteral   Code = "INVALID_LITERAL"
	UnexpectedToken  Code = "UNEXPECTED_TOKEN"
)

// Error is a fatal parse error with its position. It matches ErrParse, the
// underlying tokenizer error if any, and any *Error with the same Code.
type Error struct {
	Code Code
	Msg  string
	Pos  *token.Pos
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s at line %d, col %d", ErrParse, e.Code, e.Msg, e.Line(), e.Col())
}

// Line returns the 1-based line of the error.
func (e *Error) Line() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Line()
}

// Col returns the 1-based column of the error.
func (e *Error) Col() int {
	if e.Pos == nil {
		return 0
	}
	return e.Pos.Col()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newErr(code Code, pos *token.Pos, format string, args ...any) *Error {
	return &Error{Code: code, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// tokenErr converts a scanner error into an *Error.
func tokenErr(err error) error {
	var te *token.TokenizeErr
	if !errors.As(err, &te) {
		return err
	}
	code := UnexpectedToken
	switch {
	case errors.Is(err, token.ErrEOF):
		code = UnexpectedEOF
	case errors.Is(err, token.ErrMarker):
		code = MismatchedMarker
	case errors.Is(err, token.ErrLiteral):
		code = InvalidLiteral
	}
	pos := te.Pos
	return &Error{Code: code, Msg: te.Err.Error(), Pos: &pos, Err: te.Err}
}

func unexpected(t *token.Token, where string) *Error {
	if t.Type == token.TEOF {
		return newErr(UnexpectedEOF, t.Pos, "input ends %s", where)
	}
	return newErr(UnexpectedToken, t.Pos, "unexpected %q %s", t.Bytes, where)
}
