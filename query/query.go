// Package query selects elements of knot trees with boolean expressions.
//
// Expressions are compiled with [github.com/expr-lang/expr] against [Env],
// one evaluation per element or text element:
//
//	tag == "step" && metadata.id startsWith "s"
//	depth > 1 && (get(":attributes::'limit'") ?? 0) > 5
//
// Values of metadata, attributes and get results are in the plain
// projection of [ir.ToPlain].
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
)

var ErrQuery = errors.New("query error")

// Env is what an expression sees of the element under test.
type Env struct {
	Tag        string         `expr:"tag"`
	ID         string         `expr:"id"`
	Metadata   map[string]any `expr:"metadata"`
	Attributes map[string]any `expr:"attributes"`
	Text       string         `expr:"text"`
	IsText     bool           `expr:"isText"`
	// Depth is the number of enclosing elements.
	Depth int    `expr:"depth"`
	Path  string `expr:"path"`

	Get func(string) any  `expr:"get"`
	Has func(string) bool `expr:"has"`
}

// Match is an element selected by a query.
type Match struct {
	Path npath.Path
	Node *ir.Node
}

// Query is a compiled expression. It is safe for concurrent use.
type Query struct {
	src string
	prg *vm.Program
}

// Compile compiles src, which must evaluate to a boolean.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrQuery, src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func MustCompile(src string) *Query {
	q, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return q
}

func (q *Query) String() string {
	return q.src
}

// Match reports whether element n at path p, nested in depth elements,
// satisfies q. Nodes which are not elements never match.
func (q *Query) Match(n *ir.Node, p npath.Path, depth int) (bool, error) {
	if !n.Type.IsElement() {
		return false, nil
	}
	res, err := expr.Run(q.prg, newEnv(n, p, depth))
	if err != nil {
		return false, fmt.Errorf("%w: %q at %s: %w", ErrQuery, q.src, p, err)
	}
	ok, _ := res.(bool)
	return ok, nil
}

// Find returns the elements of root satisfying q in depth-first pre-order.
func (q *Query) Find(root *ir.Node) ([]Match, error) {
	return q.find(root, nil)
}

// FindDocument is Find over each node of doc. Paths start with the index
// of the node in doc.
func (q *Query) FindDocument(doc *ir.Document) ([]Match, error) {
	var res []Match
	for i, n := range doc.Nodes {
		ms, err := q.find(n, npath.Path{npath.Index(i)})
		if err != nil {
			return nil, err
		}
		res = append(res, ms...)
	}
	return res, nil
}

func (q *Query) find(root *ir.Node, prefix npath.Path) ([]Match, error) {
	var (
		res []Match
		err error
	)
	ir.Walk(root, func(p npath.Path, n *ir.Node) bool {
		if err != nil {
			return false
		}
		if !n.Type.IsElement() {
			return true
		}
		full := prefix.Append(p...)
		var ok bool
		ok, err = q.Match(n, full, depthOf(p))
		if err != nil {
			return false
		}
		if debug.Query() {
			debug.Logf("query %q at %s: %t\n", q.src, full, ok)
		}
		if ok {
			res = append(res, Match{Path: full, Node: n})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// depthOf counts the element sections a walk path passes through.
func depthOf(p npath.Path) int {
	d := 0
	for _, s := range p {
		if s.Type == npath.InstanceProperty {
			d++
		}
	}
	return d
}

func newEnv(n *ir.Node, p npath.Path, depth int) Env {
	env := Env{
		Tag:        n.Tag,
		Metadata:   plainMap(n.Metadata),
		Attributes: plainMap(n.Attributes),
		Depth:      depth,
		Path:       p.String(),
		Get: func(s string) any {
			sp, err := npath.Parse(s)
			if err != nil {
				return nil
			}
			v, err := ir.Resolve(n, sp, ir.NonStrict())
			if err != nil || v == nil {
				return nil
			}
			return ir.ToPlain(v)
		},
		Has: func(key string) bool {
			return n.MetaGet(key) != nil
		},
	}
	env.ID, _ = n.ID()
	if n.Type == ir.TextType {
		env.Text = n.Text
		env.IsText = true
	}
	return env
}

func plainMap(m *ir.Node) map[string]any {
	res := map[string]any{}
	if m == nil {
		return res
	}
	for i, k := range m.Keys {
		res[k] = ir.ToPlain(m.Values[i])
	}
	return res
}
