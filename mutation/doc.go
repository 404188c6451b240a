// Package mutation computes and applies typed edits between knot trees.
//
// A [Mutation] adds, deletes, moves or updates one value addressed by an
// npath.Path. Tree kinds apply to lists, extend blocks, element
// sections and whole values; object kinds apply to map entries. [Diff]
// produces mutations and [Apply] replays them, so that
//
//	Apply(old.Clone(), Diff(old, new, nil))
//
// is equal to new.
//
// Mutation lists can be written as knot ([ToNode], [Encode]), exported
// as JSON Patch against the plain projection ([JSONPatch]), and shown as
// a line diff of the formatted trees ([TextDiff]).
package mutation
