// Package format names the output formats of the encoder.
//
// Knot output round trips through the parser; JSON and YAML output render
// the plain projection of a tree (see ir.ToPlain) and are one way.
//
// # Related Packages
//
//   - github.com/knot-format/go-knot/encode - Encode IR to text
package format
