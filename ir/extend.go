package ir

import (
	"fmt"
	"slices"
)

// An extend node holds uniquely tagged element children. Keys is the
// order array and Values[i] is the child tagged Keys[i], so the tag view
// and the position view share one storage and cannot drift apart.

// ExtendPut adds child under its tag. If the tag is already present, the
// old child is dropped and the tag moves to the end of the order; the
// result reports whether that happened.
func (y *Node) ExtendPut(child *Node) bool {
	replaced := y.Remove(child.Tag) != nil
	y.Keys = append(y.Keys, child.Tag)
	y.Values = append(y.Values, child)
	return replaced
}

// ExtendInsert inserts child at position i of the order. A child already
// holding the tag is removed first; i refers to the order after that
// removal.
func (y *Node) ExtendInsert(i int, child *Node) error {
	y.Remove(child.Tag)
	if i < 0 || i > len(y.Keys) {
		return fmt.Errorf("extend position %d out of range [0, %d]", i, len(y.Keys))
	}
	y.Keys = slices.Insert(y.Keys, i, child.Tag)
	y.Values = slices.Insert(y.Values, i, child)
	return nil
}

// ExtendReplaceAt overwrites the child at position i. The new child's tag
// must not be held by another position.
func (y *Node) ExtendReplaceAt(i int, child *Node) error {
	if i < 0 || i >= len(y.Keys) {
		return fmt.Errorf("extend position %d out of range [0, %d)", i, len(y.Keys))
	}
	if j := y.Index(child.Tag); j != -1 && j != i {
		return fmt.Errorf("tag %q already present at position %d", child.Tag, j)
	}
	y.Keys[i] = child.Tag
	y.Values[i] = child
	return nil
}

// Order returns a copy of the tag order of an extend node.
func (y *Node) Order() []string {
	return slices.Clone(y.Keys)
}

// SetOrder reorders the children of an extend node. order must be a
// permutation of the current tags.
func (y *Node) SetOrder(order []string) error {
	if len(order) != len(y.Keys) {
		return fmt.Errorf("order has %d tags, extend has %d", len(order), len(y.Keys))
	}
	vals := make([]*Node, len(order))
	for i, tag := range order {
		j := y.Index(tag)
		if j == -1 {
			return fmt.Errorf("order names unknown tag %q", tag)
		}
		if vals[i] = y.Values[j]; slices.Index(order[:i], tag) != -1 {
			return fmt.Errorf("order repeats tag %q", tag)
		}
	}
	y.Keys = slices.Clone(order)
	y.Values = vals
	return nil
}

// OrderNode returns the order of an extend node as a list of strings.
func (y *Node) OrderNode() *Node {
	res := &Node{Type: ListType, Values: make([]*Node, len(y.Keys))}
	for i, k := range y.Keys {
		res.Values[i] = FromString(k)
	}
	return res
}

// OrderFromNode reads a list of strings as an extend order.
func OrderFromNode(n *Node) ([]string, error) {
	if n == nil || n.Type != ListType {
		return nil, fmt.Errorf("order must be a list of strings")
	}
	res := make([]string, len(n.Values))
	for i, v := range n.Values {
		if v.Type != StringType {
			return nil, fmt.Errorf("order item %d is a %s, not a string", i, v.Type)
		}
		res[i] = v.String
	}
	return res, nil
}
