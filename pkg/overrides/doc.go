// Package overrides applies command-line key=value tokens to a configuration tree.
//
// Keys are dot paths. A segment addresses a sequence element when the node at
// that position is a sequence, and a mapping key otherwise. Missing mapping
// keys along the way are created as empty mappings; sequences are never
// extended, so an index at or past the current length is an error.
//
// Values are read as JSON literals when possible and kept as plain strings
// when not:
//
//	env=dev                      -> "dev"
//	build.minify=true            -> true
//	projects.0.title="Best"      -> "Best"
//	nav='["home","about"]'       -> ["home", "about"]
package overrides
