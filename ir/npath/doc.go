// Package npath provides node paths: addresses of values inside a knot tree.
//
// A path is a sequence of segments written without separators:
//   - #id - the first element, in depth-first pre-order, whose metadata id is id
//   - :name - a property of an element (metadata, attributes, body, extend,
//     text, textMarker, tag) or of an extend block (order)
//   - ::'key' - a map key, or a tag in an extend block
//   - ::N - a list index, or a position in an extend block
//
// # Usage
//
//	p, err := npath.Parse("#container:extend::'header':attributes::'title'")
//	parent := p.Parent()
//	child := p.Append(npath.Key("subtitle"))
//
// The empty string is the empty path and addresses the target itself.
// A leading '.' (namespace syntax) is rejected.
//
// # Related Packages
//
//   - github.com/knot-format/go-knot/ir - resolution and mutation along paths
package npath
