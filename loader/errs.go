package loader

import (
	"errors"
	"fmt"
	"strings"
)

var ErrLoad = errors.New("load error")

type Code string

const (
	UnknownPrototype      Code = "UNKNOWN_PROTOTYPE"
	UnsupportedExtendType Code = "UNSUPPORTED_EXTEND_TYPE"
	Cycle                 Code = "CYCLE"
	Parse                 Code = "PARSE"
)

// Error is a failure to load a batch. Tag and Name identify the
// prototype involved, if any. For PARSE errors Name is the source name
// and Err the parse error.
type Error struct {
	Code Code
	Tag  string
	Name string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	buf := &strings.Builder{}
	fmt.Fprintf(buf, "%s %s", ErrLoad, e.Code)
	if e.Tag != "" || e.Name != "" {
		fmt.Fprintf(buf, " (%s %q)", e.Tag, e.Name)
	}
	buf.WriteString(": ")
	buf.WriteString(e.Msg)
	if e.Err != nil {
		fmt.Fprintf(buf, ": %v", e.Err)
	}
	return buf.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLoad}
	}
	return []error{ErrLoad, e.Err}
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
