// Package cascade discovers per-directory configs and assembles the
// configuration in effect above a directory.
//
// The ancestor walk loads each directory's own config going upward and
// stops where a config declares root, where the path stops changing, or
// where permissions cut the walk off. Ancestor-walk results are cached per
// directory, so each directory above a leaf is loaded and normalized at
// most once per factory. LoadOnDirectory, which layers a directory's own
// config onto a given parent, is not cached: every call loads and
// normalizes that directory's config again.
// Finalization appends the --config file and CLI option layers and is
// memoized by the identity of the array being finalized.
package cascade
