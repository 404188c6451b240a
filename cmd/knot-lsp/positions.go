package main

import (
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// LSP positions are 0-based with columns in UTF-16 code units; document
// offsets are bytes.

func lspPosition(content string, off int) protocol.Position {
	off = min(max(off, 0), len(content))
	line, start := 0, 0
	for i := 0; i < off; i++ {
		if content[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(utf16Len(content[start:off]))}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// offset is the inverse of lspPosition, clamped to the line and content.
func offset(content string, pos protocol.Position) int {
	line := 0
	i := 0
	for i < len(content) && line < int(pos.Line) {
		if content[i] == '\n' {
			line++
		}
		i++
	}
	for col := 0; i < len(content) && content[i] != '\n' && col < int(pos.Character); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
		i += size
	}
	return i
}

func lspRange(content string, start, end int) protocol.Range {
	return protocol.Range{Start: lspPosition(content, start), End: lspPosition(content, end)}
}
