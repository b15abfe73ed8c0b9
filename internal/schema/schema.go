package schema

import "fmt"

// Property describes the constraints on one config key.
type Property struct {
	// Check validates the value and returns a message on violation.
	Check func(value any) string
	// Deprecated carries a deprecation message; the property remains valid.
	Deprecated string
}

// Schema is a declarative description of one config mode.
type Schema struct {
	// Properties maps allowed keys to their constraints.
	Properties map[string]*Property
	// Required lists keys that must be present.
	Required []string
	// Forbidden maps disallowed keys to an explanatory message.
	Forbidden map[string]string
}

// Type name constants used in violation messages.
const (
	typeNameString  = "string"
	typeNameBoolean = "boolean"
	typeNameObject  = "object"
	typeNameArray   = "array"
)

// typeName returns the schema-level type name of a raw config value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return typeNameString
	case bool:
		return typeNameBoolean
	case map[string]any:
		return typeNameObject
	case []any, []string:
		return typeNameArray
	case int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// checkString accepts string values.
func checkString(v any) string {
	if _, ok := v.(string); !ok {
		return "must be a string, got " + typeName(v)
	}
	return ""
}

// checkStringOrNull accepts string or null values.
func checkStringOrNull(v any) string {
	if v == nil {
		return ""
	}
	return checkString(v)
}

// checkBool accepts boolean values.
func checkBool(v any) string {
	if _, ok := v.(bool); !ok {
		return "must be a boolean, got " + typeName(v)
	}
	return ""
}

// checkObject accepts object values.
func checkObject(v any) string {
	if _, ok := v.(map[string]any); !ok {
		return "must be an object, got " + typeName(v)
	}
	return ""
}

// checkStringOrStrings accepts a string or a sequence of strings.
func checkStringOrStrings(v any) string {
	switch val := v.(type) {
	case string:
		return ""
	case []string:
		return ""
	case []any:
		for i, item := range val {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("item %d must be a string, got %s", i, typeName(item))
			}
		}
		return ""
	default:
		return "must be a string or an array of strings, got " + typeName(v)
	}
}

// checkNonEmptyStringOrStrings is checkStringOrStrings with the extra
// constraint that a sequence has at least one entry.
func checkNonEmptyStringOrStrings(v any) string {
	if msg := checkStringOrStrings(v); msg != "" {
		return msg
	}
	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return "must have at least one entry"
		}
	case []string:
		if len(val) == 0 {
			return "must have at least one entry"
		}
	}
	return ""
}

// checkPlugins accepts a sequence of strings or a mapping of prefix to
// package name.
func checkPlugins(v any) string {
	switch val := v.(type) {
	case []any:
		for i, item := range val {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("item %d must be a string, got %s", i, typeName(item))
			}
		}
		return ""
	case []string:
		return ""
	case map[string]any:
		for prefix, item := range val {
			if _, ok := item.(string); !ok {
				return fmt.Sprintf("entry %q must be a string, got %s", prefix, typeName(item))
			}
		}
		return ""
	default:
		return "must be an array of strings or an object mapping prefixes to package names, got " + typeName(v)
	}
}

// checkOverrides accepts a sequence of objects. Each entry is validated
// separately against the override schema by the Validator.
func checkOverrides(v any) string {
	items, ok := v.([]any)
	if !ok {
		return "must be an array, got " + typeName(v)
	}
	for i, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return fmt.Sprintf("item %d must be an object, got %s", i, typeName(item))
		}
	}
	return ""
}

// commonProperties returns the keys shared by both schema modes.
func commonProperties() map[string]*Property {
	return map[string]*Property{
		"env":                           {Check: checkObject},
		"extends":                       {Check: checkStringOrStrings},
		"globals":                       {Check: checkObject},
		"overrides":                     {Check: checkOverrides},
		"parser":                        {Check: checkStringOrNull},
		"parserOptions":                 {Check: checkObject},
		"plugins":                       {Check: checkPlugins},
		"processor":                     {Check: checkString},
		"rules":                         {Check: checkObject},
		"settings":                      {Check: checkObject},
		"noInlineConfig":                {Check: checkBool},
		"reportUnusedDisableDirectives": {Check: checkBool},
	}
}

// TopLevel returns the schema for a top-level config.
func TopLevel() *Schema {
	props := commonProperties()
	props["root"] = &Property{Check: checkBool}
	props["ecmaFeatures"] = &Property{
		Check:      checkObject,
		Deprecated: "use parserOptions.ecmaFeatures instead",
	}
	return &Schema{Properties: props}
}

// Override returns the schema for an override fragment.
func Override() *Schema {
	props := commonProperties()
	props["files"] = &Property{Check: checkNonEmptyStringOrStrings}
	props["excludedFiles"] = &Property{Check: checkStringOrStrings}
	return &Schema{
		Properties: props,
		Required:   []string{"files"},
		Forbidden: map[string]string{
			"root": "is not allowed inside overrides",
		},
	}
}
