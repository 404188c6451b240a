package ir

import "slices"

// Index returns the position of key in a map or extend node, or -1.
func (y *Node) Index(key string) int {
	return slices.Index(y.Keys, key)
}

// Get returns the value of key in a map or extend node, or nil.
func (y *Node) Get(key string) *Node {
	i := y.Index(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Has reports whether key is present in a map or extend node.
func (y *Node) Has(key string) bool {
	return y.Index(key) != -1
}

// Put sets key in a map, replacing an existing value in place or
// appending a new entry. It reports whether the key was already present.
func (y *Node) Put(key string, v *Node) bool {
	if i := y.Index(key); i != -1 {
		y.Values[i] = v
		return true
	}
	y.Keys = append(y.Keys, key)
	y.Values = append(y.Values, v)
	return false
}

// Remove deletes key from a map or extend node and returns its value, or
// nil if it was absent.
func (y *Node) Remove(key string) *Node {
	i := y.Index(key)
	if i == -1 {
		return nil
	}
	v := y.Values[i]
	y.Keys = slices.Delete(y.Keys, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return v
}

// Len returns the number of items of a list, map or extend node.
func (y *Node) Len() int {
	return len(y.Values)
}

// InsertAt inserts v into a list at i, shifting later items right.
func (y *Node) InsertAt(i int, v *Node) {
	y.Values = slices.Insert(y.Values, i, v)
}

// RemoveAt deletes item i of a list, map or extend node.
func (y *Node) RemoveAt(i int) *Node {
	v := y.Values[i]
	if y.Keys != nil {
		y.Keys = slices.Delete(y.Keys, i, i+1)
	}
	y.Values = slices.Delete(y.Values, i, i+1)
	return v
}
