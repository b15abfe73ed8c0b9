// Package schema validates raw configuration data against a declarative
// schema before normalization.
//
// Two schema modes exist: top-level configs (which may carry root and the
// deprecated ecmaFeatures key) and override fragments (which require files,
// allow excludedFiles, and forbid root). The top-level form may also be a
// sequence of fragments; each is validated in the mode its shape implies.
package schema
