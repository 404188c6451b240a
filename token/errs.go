package token

import (
	"errors"
	"fmt"
)

var (
	ErrEOF          = errors.New("unexpected end of input")
	ErrUnterminated = errors.New("unterminated")
	ErrLiteral      = errors.New("invalid literal")
	ErrBadEscape    = errors.New("bad escape")
	ErrNumber       = errors.New("invalid number")
	ErrMarker       = errors.New("mismatched text marker")
	ErrUnexpected   = errors.New("unexpected character")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p)
}
