package token

import (
	"strings"
	"unicode/utf8"
)

// IsIdent reports whether v can be written as a bare identifier.
func IsIdent(v string) bool {
	if v == "" {
		return false
	}
	if !identStart(v[0]) {
		return false
	}
	for i := 1; i < len(v); i++ {
		if !identChar(v[i]) {
			return false
		}
	}
	return true
}

// NeedsQuote reports whether a map key must be quoted when written.
// Keywords are quoted so that they read back as keys unambiguously.
func NeedsQuote(v string) bool {
	if !IsIdent(v) {
		return true
	}
	switch v {
	case "true", "false", "null":
		return true
	default:
		return false
	}
}

func identStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func identChar(c byte) bool {
	return identStart(c) || asciiDigit(c) || c == '.' || c == '-'
}

// Quote double quotes v, escaping exactly the characters Unquote decodes.
func Quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteKey quotes v only if it is not a plain identifier.
func QuoteKey(v string) string {
	if NeedsQuote(v) {
		return Quote(v)
	}
	return v
}

// Unquote decodes a single or double quoted string including its quotes.
func Unquote(d []byte) (string, error) {
	if len(d) < 2 {
		return "", ErrUnterminated
	}
	q := d[0]
	if (q != '"' && q != '\'') || d[len(d)-1] != q {
		return "", ErrUnterminated
	}
	d = d[1 : len(d)-1]
	var b strings.Builder
	b.Grow(len(d))
	for i := 0; i < len(d); i++ {
		c := d[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(d) {
			return "", ErrBadEscape
		}
		switch d[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"', '\'', '\\':
			b.WriteByte(d[i])
		default:
			return "", ErrBadEscape
		}
	}
	s := b.String()
	if !utf8.ValidString(s) {
		return "", ErrLiteral
	}
	return s, nil
}

// QuotedLen returns the length of the quoted string at the start of d,
// quotes included.
func QuotedLen(d []byte) (int, error) {
	q := d[0]
	for i := 1; i < len(d); i++ {
		switch d[i] {
		case '\\':
			i++
			if i == len(d) {
				return 0, ErrUnterminated
			}
			switch d[i] {
			case 'n', 't', 'r', '"', '\'', '\\':
			default:
				return 0, ErrBadEscape
			}
		case q:
			return i + 1, nil
		}
	}
	return 0, ErrUnterminated
}
