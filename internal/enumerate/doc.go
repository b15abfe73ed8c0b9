// Package enumerate expands input patterns into the files to process,
// pairing each with its finalized configuration.
//
// Patterns may be literal files, directories, or globs. Directory walks
// load each directory's own config as they descend, because a
// directory's configuration decides which extra files that directory
// contributes (an element's files globs can opt in extensions outside
// the default set). Enumeration is synchronous and deterministic for a
// fixed filesystem state.
package enumerate
