package configarray

import (
	"sort"
	"strings"
)

// ResolvedConfig is the single configuration in effect for one file,
// produced by ExtractConfig.
type ResolvedConfig struct {
	Env           map[string]any
	Globals       map[string]any
	Parser        *ParserReference
	ParserOptions map[string]any
	Plugins       map[string]*PluginReference
	Processor     *ResolvedProcessor
	Rules         map[string][]any
	Settings      map[string]any

	NoInlineConfig                bool
	ReportUnusedDisableDirectives bool
}

// ExtractConfig reduces the array to the configuration in effect for
// filePath. The walk runs from the last element to the first and lets the
// first writer win at each field, so later (more specific) elements take
// precedence. Elements whose predicate rejects filePath are skipped.
//
// Extraction is deterministic and never mutates the array or its
// elements; extracting twice yields equal results.
func (a *ConfigArray) ExtractConfig(filePath string) (*ResolvedConfig, error) {
	config := &ResolvedConfig{
		Env:           map[string]any{},
		Globals:       map[string]any{},
		ParserOptions: map[string]any{},
		Plugins:       map[string]*PluginReference{},
		Rules:         map[string][]any{},
		Settings:      map[string]any{},
	}

	var processor string
	var noInline, reportUnused *bool

	for i := len(a.Elements) - 1; i >= 0; i-- {
		el := a.Elements[i]
		if el.Criteria != nil && !el.Criteria.Test(filePath) {
			continue
		}

		if config.Parser == nil && el.Parser != nil {
			if el.Parser.Error != nil {
				return nil, el.Parser.Error
			}
			config.Parser = el.Parser
		}
		if processor == "" && el.Processor != "" {
			processor = el.Processor
		}
		if noInline == nil && el.NoInlineConfig != nil {
			noInline = el.NoInlineConfig
		}
		if reportUnused == nil && el.ReportUnusedDisableDirectives != nil {
			reportUnused = el.ReportUnusedDisableDirectives
		}

		mergeWithoutOverwrite(config.Env, el.Env)
		mergeWithoutOverwrite(config.Globals, el.Globals)
		mergeWithoutOverwrite(config.ParserOptions, el.ParserOptions)
		mergeWithoutOverwrite(config.Settings, el.Settings)

		if err := mergePlugins(config.Plugins, el.Plugins); err != nil {
			return nil, err
		}
		mergeRules(config.Rules, el.Rules)
	}

	if noInline != nil {
		config.NoInlineConfig = *noInline
	}
	if reportUnused != nil {
		config.ReportUnusedDisableDirectives = *reportUnused
	}

	if processor != "" {
		resolved, err := resolveProcessor(processor, config.Plugins)
		if err != nil {
			return nil, err
		}
		config.Processor = resolved
	}

	return config, nil
}

// mergePlugins attaches source references the target lacks, raising any
// stored resolution error at that point. Two different definitions under
// one id are a conflict.
func mergePlugins(target map[string]*PluginReference, source map[string]*PluginReference) error {
	for _, id := range sortedKeys(source) {
		ref := source[id]
		existing, ok := target[id]
		if !ok {
			if ref.Error != nil {
				return ref.Error
			}
			target[id] = ref
			continue
		}
		if existing.Definition != ref.Definition {
			return &PluginConflictError{ID: id, First: existing, Second: ref}
		}
	}
	return nil
}

// mergeRules folds source rule entries into the target. A rule the target
// lacks is copied with its severity promoted to array form. A target
// entry holding only a severity gains the source's options tail. Entries
// that already carry options are final.
func mergeRules(target map[string][]any, source map[string]any) {
	for _, id := range sortedKeys(source) {
		srcVal := source[id]
		existing, ok := target[id]

		if !ok {
			switch sv := srcVal.(type) {
			case []any:
				entry := make([]any, len(sv))
				copy(entry, sv)
				target[id] = entry
			default:
				target[id] = []any{srcVal}
			}
			continue
		}

		if len(existing) == 1 {
			if sv, ok := srcVal.([]any); ok && len(sv) > 1 {
				target[id] = append(existing, sv[1:]...)
			}
		}
	}
}

// resolveProcessor replaces the merged processor string with the
// definition exported by its plugin.
func resolveProcessor(name string, plugins map[string]*PluginReference) (*ResolvedProcessor, error) {
	sep := strings.LastIndex(name, "/")
	if sep <= 0 || sep == len(name)-1 {
		return nil, &InvalidProcessorNameError{Raw: name}
	}

	pluginID, processorName := name[:sep], name[sep+1:]
	plugin, ok := plugins[pluginID]
	if !ok || plugin.Definition == nil {
		return nil, &ProcessorNotFoundError{Name: name}
	}

	definition, ok := plugin.Definition.Processors[processorName]
	if !ok {
		return nil, &ProcessorNotFoundError{Name: name}
	}

	return &ResolvedProcessor{Definition: definition, ID: name}, nil
}

// sortedKeys returns map keys in a stable order so extraction is
// deterministic regardless of map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
