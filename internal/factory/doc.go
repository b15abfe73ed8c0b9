// Package factory turns raw config data into config arrays.
//
// Normalization flattens one tree-shaped config (extends and overrides
// expanded, in order) into a lazy sequence of elements. The factory's
// entry points wrap that sequence with loading, schema validation, and
// concatenation onto a parent array.
package factory
