// Package encode encodes IR nodes to knot text.
//
// # Usage
//
//	// Encode compactly
//	s, err := encode.String(node)
//
//	// Encode with one entry per line, indented by 4 spaces
//	err := encode.Encode(node, os.Stdout, encode.Pretty(true), encode.Indent(4))
//
//	// Encode the plain projection as JSON
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// Knot output parses back to a structurally equal tree in both compact
// and pretty mode.
//
// # Related Packages
//
//   - github.com/knot-format/go-knot/ir - IR representation
//   - github.com/knot-format/go-knot/parse - Parse text to IR
package encode
