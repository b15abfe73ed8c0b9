package resolve

import "fmt"

// ExtendMissingError indicates an extends reference that could not be
// located: an unknown eslint: name, a plugin config the plugin does not
// provide, or an unresolvable package.
type ExtendMissingError struct {
	// Name is the extends specifier as written.
	Name string
	// ImporterPath is the config file that referenced it.
	ImporterPath string
	// Cause is the underlying resolution error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ExtendMissingError) Error() string {
	return fmt.Sprintf("failed to extend from %q referenced in %s", e.Name, e.ImporterPath)
}

// Unwrap returns the underlying error.
func (e *ExtendMissingError) Unwrap() error {
	return e.Cause
}

// PluginMissingError indicates a plugin module that could not be found.
// It is stored on the plugin reference and raised only when the plugin
// is actually used.
type PluginMissingError struct {
	// LongName is the normalized package name, e.g. "eslint-plugin-foo".
	LongName string
	// ImporterPath is the config file that referenced the plugin.
	ImporterPath string
	// Cause is the underlying resolution error.
	Cause error
}

// Error implements the error interface.
func (e *PluginMissingError) Error() string {
	return fmt.Sprintf("failed to load plugin %q declared in %s", e.LongName, e.ImporterPath)
}

// Unwrap returns the underlying error.
func (e *PluginMissingError) Unwrap() error {
	return e.Cause
}

// ParserMissingError indicates a parser module that could not be found,
// with the same lazy semantics as PluginMissingError.
type ParserMissingError struct {
	// Name is the parser specifier as written.
	Name string
	// ImporterPath is the config file that referenced the parser.
	ImporterPath string
	// Cause is the underlying resolution error.
	Cause error
}

// Error implements the error interface.
func (e *ParserMissingError) Error() string {
	return fmt.Sprintf("failed to load parser %q declared in %s", e.Name, e.ImporterPath)
}

// Unwrap returns the underlying error.
func (e *ParserMissingError) Unwrap() error {
	return e.Cause
}

// ModuleNotFoundError indicates the module resolver found no match for a
// request.
type ModuleNotFoundError struct {
	// Request is the module specifier.
	Request string
	// ImporterPath is where resolution started from.
	ImporterPath string
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("cannot find module %q from %s", e.Request, e.ImporterPath)
}

// InvalidNameError indicates a malformed plugin or config name, such as
// one containing whitespace.
type InvalidNameError struct {
	// Name is the offending specifier.
	Name string
	// Reason describes what is wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}
