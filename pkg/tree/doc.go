// Package tree models the configuration passed to every template.
//
// A tree is built from three node variants: Scalar, Sequence and Mapping.
// Traversal code switches on the concrete type, so the rules for indexing a
// sequence or creating a missing mapping key are checked against the real
// shape of the tree rather than guessed from the input.
//
// A run owns exactly one tree. It is created by the config loader, mutated
// in place by overrides, and read-only from then on; templates receive the
// plain Go form produced by ToNative.
package tree
