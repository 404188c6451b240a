// Package token provides the lexical layer of the knot format.
//
// A [Scanner] produces [Token] values on demand. Raw text bodies of text
// elements are context dependent, so the parser asks the scanner for them
// explicitly with [Scanner.RawText] once it has seen a text opener.
// [Tokenize] runs a scanner over a whole document for tooling.
//
// [PosDoc] converts byte offsets into 1-based line and column numbers.
package token
