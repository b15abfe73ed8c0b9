// Package resolve turns extends, plugins, and parser specifiers into
// loadable targets.
//
// Specifiers are classified by shape: built-in names (eslint:*), plugin
// configs (plugin:pkg/name), package names (normalized to the
// eslint-config-* / eslint-plugin-* conventions), absolute paths, and
// importer-relative paths. Package lookup goes through a ModuleResolver;
// a caller-provided plugin pool is consulted before the filesystem so
// hosts can inject definitions without installing packages.
//
// Failures that concern an explicitly requested name surface eagerly.
// Failures loading a plugin or parser are stored on the returned
// reference and surface only if the reference is used during extraction.
package resolve
