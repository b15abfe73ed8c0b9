package configarray

import "fmt"

// PluginConflictError indicates two elements contribute different
// definitions for the same plugin id.
type PluginConflictError struct {
	// ID is the conflicting plugin id.
	ID string
	// First is the reference already merged into the result.
	First *PluginReference
	// Second is the reference that collided with it.
	Second *PluginReference
}

// Error implements the error interface.
func (e *PluginConflictError) Error() string {
	return fmt.Sprintf(
		"plugin %q conflicts: loaded for %s (from %s) and for %s (from %s)",
		e.ID,
		e.First.ImporterName, e.First.ImporterPath,
		e.Second.ImporterName, e.Second.ImporterPath,
	)
}

// ProcessorNotFoundError indicates the merged config names a processor
// that the merged plugins do not provide.
type ProcessorNotFoundError struct {
	// Name is the qualified processor name.
	Name string
}

// Error implements the error interface.
func (e *ProcessorNotFoundError) Error() string {
	return fmt.Sprintf("processor %q was not found", e.Name)
}

// InvalidProcessorNameError indicates a processor string that is not of
// the pluginId/processorName form.
type InvalidProcessorNameError struct {
	// Raw is the malformed processor string.
	Raw string
}

// Error implements the error interface.
func (e *InvalidProcessorNameError) Error() string {
	return fmt.Sprintf("processor %q is invalid: processors are named pluginId/processorName", e.Raw)
}
