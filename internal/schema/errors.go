package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	// Source identifies the config being validated (file path or logical name).
	Source string
	// Key is the offending property, empty for structural problems.
	Key string
	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %q %s", e.Source, e.Key, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// InvalidConfigError aggregates the schema violations found in one config.
type InvalidConfigError struct {
	// Path is the file path or logical name of the invalid config.
	Path string
	// Violations holds each individual violation in property order.
	Violations []*ValidationError
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	details := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		details[i] = v.Error()
	}
	return fmt.Sprintf("invalid config %s:\n\t%s", e.Path, strings.Join(details, "\n\t"))
}
