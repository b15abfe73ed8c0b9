// Package configarray holds the flattened representation of configuration
// and the logic that reduces it to a single resolved config for a file.
//
// A ConfigArray is an ordered sequence of elements produced by normalizing
// tree-shaped config data (extends and overrides expanded). Order matters:
// later elements take precedence. Extraction walks the array back to front
// and lets the first writer win at each field, so the most specific
// configuration (CLI options, leaf directory, overrides) decides the final
// value while earlier elements fill the gaps.
package configarray
