package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc indexes the newlines of a document so byte offsets can be
// turned into line and column numbers.
type PosDoc struct {
	d []byte
	n []int
}

// NewPosDoc indexes d.
func NewPosDoc(d []byte) *PosDoc {
	p := &PosDoc{d: d}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

// LineCol returns the 1-based line and column of byte offset off.
// Columns count bytes.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 1, off + 1
	}
	return di + 1, off - p.n[di-1]
}

// Offset is the inverse of LineCol, clamped to the document.
func (p *PosDoc) Offset(line, col int) int {
	if line <= 1 {
		return min(max(col-1, 0), len(p.d))
	}
	if line-2 >= len(p.n) {
		return len(p.d)
	}
	off := p.n[line-2] + col
	return min(max(off, 0), len(p.d))
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: p,
	}
}

func (p *PosDoc) End() *Pos {
	return &Pos{
		I: len(p.d),
		D: p,
	}
}

// Bytes returns the indexed document.
func (p *PosDoc) Bytes() []byte {
	return p.d
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	sample := string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	line, col := p.D.LineCol(p.I)
	return fmt.Sprintf("`...%s...` at line %d, col %d", sample, line, col)
}
