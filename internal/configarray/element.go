package configarray

import (
	"github.com/tidwall/sjson"
)

// Element is one atom of configuration after flattening. Elements are
// immutable once normalization completes.
type Element struct {
	// Name is the logical name of the config this element came from,
	// e.g. ".eslintrc.json", "CLIOptions", or "BaseConfig » eslint:recommended".
	Name string

	// FilePath is the config file that produced the element, empty for
	// in-memory inputs.
	FilePath string

	// Criteria is the compiled file predicate, nil when the element
	// applies to every file at its cascade level.
	Criteria *OverrideTester

	// Root, when non-nil, marks whether the cascade stops here. Elements
	// with a predicate never carry root; normalization suppresses it.
	Root *bool

	// Env maps environment names to enablement.
	Env map[string]any

	// Globals maps global names to their visibility.
	Globals map[string]any

	// Parser is the resolved parser reference, nil when unset.
	Parser *ParserReference

	// ParserOptions holds free-form parser options.
	ParserOptions map[string]any

	// Plugins maps shorthand plugin ids to resolved references.
	Plugins map[string]*PluginReference

	// Processor is the qualified processor name, empty when unset.
	Processor string

	// Rules maps rule ids to a severity or a [severity, options...] array.
	Rules map[string]any

	// Settings holds free-form shared settings.
	Settings map[string]any

	// NoInlineConfig disables inline config comments when set.
	NoInlineConfig *bool

	// ReportUnusedDisableDirectives enables unused-directive reporting
	// when set.
	ReportUnusedDisableDirectives *bool
}

// describe renders the element's provenance as a JSON fragment.
func (e *Element) describe(json string, prefix string) string {
	json, _ = sjson.Set(json, prefix+".name", e.Name)
	json, _ = sjson.Set(json, prefix+".filePath", e.FilePath)
	if e.Criteria != nil {
		json, _ = sjson.SetRaw(json, prefix+".criteria", e.Criteria.String())
	}
	return json
}
