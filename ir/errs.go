package ir

import (
	"errors"
	"fmt"

	"github.com/knot-format/go-knot/ir/npath"
)

var ErrPath = errors.New("path error")

type PathErrorCode string

const (
	NotFound     PathErrorCode = "NOT_FOUND"
	OutOfBounds  PathErrorCode = "OUT_OF_BOUNDS"
	TypeMismatch PathErrorCode = "TYPE_MISMATCH"
	Invalid      PathErrorCode = "INVALID"
)

// PathError reports a failure to resolve or mutate along a path. At is
// the index of the failing segment in Path.
type PathError struct {
	Code PathErrorCode
	Path npath.Path
	At   int
	Msg  string
}

func (e *PathError) Error() string {
	at := ""
	if e.At < len(e.Path) {
		at = " at " + e.Path[:e.At+1].String()
	}
	return fmt.Sprintf("%s %s: %s%s (path %q)", ErrPath, e.Code, e.Msg, at, e.Path.String())
}

func (e *PathError) Unwrap() error {
	return ErrPath
}

// Is matches another *PathError with the same code, so callers can test
// errors.Is(err, &ir.PathError{Code: ir.NotFound}).
func (e *PathError) Is(target error) bool {
	t, ok := target.(*PathError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func pathErr(code PathErrorCode, p npath.Path, at int, format string, args ...any) *PathError {
	return &PathError{Code: code, Path: p, At: at, Msg: fmt.Sprintf(format, args...)}
}
