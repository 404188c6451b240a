package loader

import (
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
)

// PrefabsTag is the tag of containers whose children are prototypes.
const PrefabsTag = "Prefabs"

// Metadata keys read by the loader.
const (
	KeyProto      = "proto"
	KeyExtendType = "extendType"
	KeyExport     = "export"
	KeyName       = "name"
	KeyID         = "id"
	KeyRemove     = "remove"
)

// Override is the only supported extendType.
const Override = "Override"

// controlKeys never appear in loaded output. remove is handled apart
// since the parent of an element consumes it.
var controlKeys = []string{KeyProto, KeyExtendType, KeyExport}

// Directives returns the metadata keys with a meaning to the loader.
func Directives() []string {
	return []string{KeyProto, KeyExtendType, KeyExport, KeyName, KeyID, KeyRemove}
}

// protoName returns the name an element is exported under: a string
// export, else name, else id.
func protoName(n *ir.Node) (string, bool) {
	if s, ok := n.MetaString(KeyExport); ok {
		return s, true
	}
	if s, ok := n.MetaString(KeyName); ok {
		return s, true
	}
	return n.MetaString(KeyID)
}

func isExported(n *ir.Node) bool {
	v := n.MetaGet(KeyExport)
	return v != nil && truthy(v)
}

// isRemove reports whether n is a removal directive.
func isRemove(n *ir.Node) bool {
	if !n.Type.IsElement() {
		return false
	}
	v := n.MetaGet(KeyRemove)
	return v != nil && truthy(v)
}

// removeTarget returns the id a body removal directive deletes: a string
// remove value, else the directive's own id.
func removeTarget(n *ir.Node) (string, bool) {
	if s, ok := n.MetaString(KeyRemove); ok {
		return s, true
	}
	return n.ID()
}

func truthy(v *ir.Node) bool {
	switch v.Type {
	case ir.NullType:
		return false
	case ir.BoolType:
		return v.Bool
	}
	return true
}

func stripKeys(n *ir.Node, keys ...string) {
	if n.Metadata == nil {
		return
	}
	for _, k := range keys {
		n.Metadata.Remove(k)
	}
}

// Strip removes all loader directives from the metadata of every element
// in n.
func Strip(n *ir.Node) {
	ir.Walk(n, func(_ npath.Path, y *ir.Node) bool {
		if y.Type.IsElement() {
			stripKeys(y, append(controlKeys, KeyRemove)...)
		}
		return true
	})
}
