package npath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/knot-format/go-knot/token"
)

var (
	ErrSyntax      = errors.New("path syntax")
	ErrUnsupported = errors.New("unsupported path syntax")
)

// Path is an ordered sequence of segments. The empty path addresses the
// target itself.
type Path []Segment

// Parse parses the string form of a path.
func Parse(s string) (Path, error) {
	if strings.HasPrefix(s, ".") {
		return nil, fmt.Errorf("%w: namespace paths (%q)", ErrUnsupported, s)
	}
	var res Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '#':
			seg, n, err := parseUnique(s[i+1:])
			if err != nil {
				return nil, fmt.Errorf("%w at offset %d in %q", err, i, s)
			}
			res = append(res, seg)
			i += 1 + n
		case ':':
			if i+1 < len(s) && s[i+1] == ':' {
				seg, n, err := parseEntry(s[i+2:])
				if err != nil {
					return nil, fmt.Errorf("%w at offset %d in %q", err, i, s)
				}
				res = append(res, seg)
				i += 2 + n
				continue
			}
			n := identLen(s[i+1:])
			if n == 0 {
				return nil, fmt.Errorf("%w: expected property name at offset %d in %q", ErrSyntax, i, s)
			}
			res = append(res, Property(s[i+1:i+1+n]))
			i += 1 + n
		default:
			return nil, fmt.Errorf("%w: expected '#' or ':' at offset %d in %q", ErrSyntax, i, s)
		}
	}
	return res, nil
}

// MustParse is Parse for paths known to be valid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseUnique(s string) (Segment, int, error) {
	if s != "" && (s[0] == '\'' || s[0] == '"') {
		v, n, err := quoted(s)
		if err != nil {
			return Segment{}, 0, err
		}
		return Unique(v), n, nil
	}
	n := strings.IndexAny(s, "#:")
	if n == -1 {
		n = len(s)
	}
	if n == 0 {
		return Segment{}, 0, fmt.Errorf("%w: empty unique name", ErrSyntax)
	}
	return Unique(s[:n]), n, nil
}

func parseEntry(s string) (Segment, int, error) {
	if s == "" {
		return Segment{}, 0, fmt.Errorf("%w: expected key or index", ErrSyntax)
	}
	switch c := s[0]; {
	case c == '\'' || c == '"':
		v, n, err := quoted(s)
		if err != nil {
			return Segment{}, 0, err
		}
		return Key(v), n, nil
	case '0' <= c && c <= '9':
		n := 0
		for n < len(s) && '0' <= s[n] && s[n] <= '9' {
			n++
		}
		i, err := strconv.Atoi(s[:n])
		if err != nil {
			return Segment{}, 0, fmt.Errorf("%w: index %q: %w", ErrSyntax, s[:n], err)
		}
		return Index(i), n, nil
	default:
		n := identLen(s)
		if n == 0 {
			return Segment{}, 0, fmt.Errorf("%w: expected key or index", ErrSyntax)
		}
		return Key(s[:n]), n, nil
	}
}

func quoted(s string) (string, int, error) {
	n, err := token.QuotedLen([]byte(s))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	v, err := token.Unquote([]byte(s[:n]))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return v, n, nil
}

func identLen(s string) int {
	n := 0
	for n < len(s) && token.IsIdent(s[:n+1]) {
		n++
	}
	return n
}

func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteString(seg.String())
	}
	return b.String()
}

// Append returns a new path with segs added; p is not modified.
func (p Path) Append(segs ...Segment) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

// Parent returns the path without its last segment, or nil for the empty
// path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the last segment and whether there is one.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether pre is a prefix of p.
func (p Path) HasPrefix(pre Path) bool {
	return len(pre) <= len(p) && p[:len(pre)].Equal(pre)
}
