package loader

import (
	"maps"
	"slices"

	"github.com/knot-format/go-knot/debug"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/parse"
	"github.com/knot-format/go-knot/token"
)

// Source is one document of a batch.
type Source struct {
	Name string
	Data []byte
}

// Exports holds resolved prototypes by tag and name. The nodes carry no
// loader directives.
type Exports map[string]map[string]*ir.Node

// Get returns the prototype tag name, or nil.
func (e Exports) Get(tag, name string) *ir.Node {
	return e[tag][name]
}

func (e Exports) put(tag, name string, n *ir.Node) {
	byName := e[tag]
	if byName == nil {
		byName = map[string]*ir.Node{}
		e[tag] = byName
	}
	byName[name] = n
}

// Clone deep copies e.
func (e Exports) Clone() Exports {
	res := Exports{}
	for tag, byName := range e {
		for name, n := range byName {
			res.put(tag, name, n.Clone())
		}
	}
	return res
}

// Document lists the prototypes of e sorted by tag and name, each marked
// with export=name so that loading the document exports them again.
func (e Exports) Document() *ir.Document {
	doc := &ir.Document{}
	for _, tag := range slices.Sorted(maps.Keys(e)) {
		byName := e[tag]
		for _, name := range slices.Sorted(maps.Keys(byName)) {
			n := byName[name].Clone()
			n.Meta().Put(KeyExport, ir.FromString(name))
			doc.Nodes = append(doc.Nodes, n)
		}
	}
	return doc
}

// Batch is the result of loading documents together.
type Batch struct {
	Resolved []*ir.Document
	Exports  Exports
}

// Loader resolves prototypes. A Loader is not safe for concurrent use.
type Loader struct {
	dropPrefabs bool
	parseOpts   []parse.ParseOption
	positions   map[*ir.Node]*token.Pos
	imported    Exports
}

type Option func(*Loader)

// DropPrefabs removes Prefabs containers from loaded documents. Their
// prototypes are still exported.
func DropPrefabs(v bool) Option {
	return func(l *Loader) { l.dropPrefabs = v }
}

// WithParseOptions adds options for parsing sources.
func WithParseOptions(opts ...parse.ParseOption) Option {
	return func(l *Loader) { l.parseOpts = append(l.parseOpts, opts...) }
}

// WithPositions gives the positions of the nodes of documents passed to
// ResolveDocuments, as recorded by parse.ParsePositions. Warnings then
// carry line and column.
func WithPositions(positions map[*ir.Node]*token.Pos) Option {
	return func(l *Loader) { l.positions = positions }
}

func New(opts ...Option) *Loader {
	l := &Loader{imported: Exports{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Import makes the prototypes of e available to later loads. Prototypes
// defined in a batch take precedence over imported ones.
func (l *Loader) Import(e Exports) {
	for tag, byName := range e {
		for name, n := range byName {
			l.imported.put(tag, name, n.Clone())
		}
	}
}

// LoadDocument parses and resolves a single document.
func (l *Loader) LoadDocument(d []byte) (*ir.Document, error) {
	b, err := l.BatchLoad(Source{Data: d})
	if err != nil {
		return nil, err
	}
	return b.Resolved[0], nil
}

// BatchLoad parses and resolves srcs with one prototype namespace. Any
// error aborts the whole batch.
func (l *Loader) BatchLoad(srcs ...Source) (*Batch, error) {
	docs := make([]*ir.Document, len(srcs))
	positions := map[*ir.Node]*token.Pos{}
	opts := append(slices.Clip(l.parseOpts), parse.ParsePositions(positions))
	for i, src := range srcs {
		doc, err := parse.Parse(src.Data, opts...)
		if err != nil {
			return nil, &Error{Code: Parse, Name: src.Name, Msg: "cannot parse source", Err: err}
		}
		docs[i] = doc
	}
	return l.resolve(docs, positions)
}

// ResolveDocuments resolves already parsed documents with one prototype
// namespace. The documents are not modified.
func (l *Loader) ResolveDocuments(docs ...*ir.Document) (*Batch, error) {
	return l.resolve(docs, l.positions)
}

func (l *Loader) resolve(docs []*ir.Document, positions map[*ir.Node]*token.Pos) (*Batch, error) {
	r := newResolver(l.imported)
	warnings := make([][]ir.Warning, len(docs))
	for i, doc := range docs {
		warnings[i] = slices.Clone(doc.Warnings)
		r.collect(doc, positions, &warnings[i])
	}
	b := &Batch{Exports: Exports{}}
	for i, doc := range docs {
		res := &ir.Document{Warnings: warnings[i]}
		for _, n := range doc.Nodes {
			if l.dropPrefabs && n.Type == ir.ElementType && n.Tag == PrefabsTag {
				continue
			}
			if isRemove(n) {
				continue
			}
			rn, err := r.value(n)
			if err != nil {
				return nil, err
			}
			if rn.Type.IsElement() {
				stripKeys(rn, KeyRemove)
			}
			res.Nodes = append(res.Nodes, rn)
		}
		b.Resolved = append(b.Resolved, res)
	}
	for _, k := range r.order {
		n, err := r.proto(k.tag, k.name)
		if err != nil {
			return nil, err
		}
		b.Exports.put(k.tag, k.name, n)
	}
	if debug.Load() {
		debug.Logf("loaded %d documents, %d prototypes\n", len(docs), len(r.order))
	}
	return b, nil
}

// LoadDocument loads d with a new Loader.
func LoadDocument(d []byte, opts ...Option) (*ir.Document, error) {
	return New(opts...).LoadDocument(d)
}

// BatchLoad loads srcs with a new Loader.
func BatchLoad(srcs []Source, opts ...Option) (*Batch, error) {
	return New(opts...).BatchLoad(srcs...)
}
