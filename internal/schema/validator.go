package schema

import (
	"fmt"
	"sort"
)

// Validator validates raw config data against the two-mode config schema.
type Validator struct {
	topLevel *Schema
	override *Schema

	// onDeprecated is invoked for each deprecated key encountered.
	onDeprecated func(source, key, message string)
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithDeprecationHandler sets the callback invoked when a config uses a
// deprecated key.
func WithDeprecationHandler(fn func(source, key, message string)) ValidatorOption {
	return func(v *Validator) {
		v.onDeprecated = fn
	}
}

// NewValidator creates a validator for config data.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		topLevel: TopLevel(),
		override: Override(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ValidateTopLevel validates a top-level config object. The source names
// the config's origin (file path or logical name) for diagnostics.
func (v *Validator) ValidateTopLevel(data map[string]any, source string) error {
	errs := v.validateObject(data, v.topLevel, source)
	return asError(source, errs)
}

// ValidateOverride validates one override fragment.
func (v *Validator) ValidateOverride(data map[string]any, source string) error {
	errs := v.validateObject(data, v.override, source)
	return asError(source, errs)
}

// ValidateFragment validates one entry of an array-form config. A string
// entry is an extends reference and always valid here; an object entry is
// validated as an override when it carries files, as a top-level config
// otherwise.
func (v *Validator) ValidateFragment(value any, source string) error {
	switch val := value.(type) {
	case string:
		return nil
	case map[string]any:
		if _, ok := val["files"]; ok {
			return v.ValidateOverride(val, source)
		}
		return v.ValidateTopLevel(val, source)
	default:
		return asError(source, []*ValidationError{{
			Source:  source,
			Message: "array-form entries must be objects or strings, got " + typeName(value),
		}})
	}
}

// validateObject applies one schema to one object, recursing into the
// overrides member with the override schema.
func (v *Validator) validateObject(data map[string]any, s *Schema, source string) []*ValidationError {
	var errs []*ValidationError

	for _, key := range v.sortedKeys(data) {
		value := data[key]

		if msg, forbidden := s.Forbidden[key]; forbidden {
			errs = append(errs, &ValidationError{Source: source, Key: key, Message: msg})
			continue
		}

		prop, known := s.Properties[key]
		if !known {
			errs = append(errs, &ValidationError{Source: source, Key: key, Message: "is not a known config property"})
			continue
		}

		if prop.Deprecated != "" && v.onDeprecated != nil {
			v.onDeprecated(source, key, prop.Deprecated)
		}

		if prop.Check != nil {
			if msg := prop.Check(value); msg != "" {
				errs = append(errs, &ValidationError{Source: source, Key: key, Message: msg})
				continue
			}
		}

		if key == "overrides" {
			errs = append(errs, v.validateOverrideEntries(value, source)...)
		}
	}

	for _, key := range s.Required {
		if _, ok := data[key]; !ok {
			errs = append(errs, &ValidationError{Source: source, Key: key, Message: "is required"})
		}
	}

	return errs
}

// validateOverrideEntries validates each member of an overrides array.
// The array shape itself was already checked by the property check.
func (v *Validator) validateOverrideEntries(value any, source string) []*ValidationError {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	var errs []*ValidationError
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entrySource := fmt.Sprintf("%s#overrides[%d]", source, i)
		errs = append(errs, v.validateObject(entry, v.override, entrySource)...)
	}
	return errs
}

// sortedKeys returns the object's keys in a stable order so violation
// lists are deterministic.
func (v *Validator) sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// asError converts a violation list to an error, nil when empty.
func asError(source string, errs []*ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &InvalidConfigError{Path: source, Violations: errs}
}
