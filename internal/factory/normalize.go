package factory

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/configfile"
	"github.com/dshills/lintconf/internal/resolve"
)

// elementSeq is a lazy sequence of normalized elements. Consumers may
// stop pulling at any point; each element is produced on demand and any
// I/O it needs happens inline.
type elementSeq = iter.Seq2[*configarray.Element, error]

// normalizeContext carries the provenance of the config being flattened.
type normalizeContext struct {
	// filePath is the config file, empty for in-memory data.
	filePath string
	// matchBasePath anchors compiled file predicates.
	matchBasePath string
	// name is the logical config name for diagnostics and element names.
	name string
}

// withName returns a copy of the context under a different name.
func (c *normalizeContext) withName(name string) *normalizeContext {
	return &normalizeContext{filePath: c.filePath, matchBasePath: c.matchBasePath, name: name}
}

// newContext builds the context for one config source.
func (f *ConfigArrayFactory) newContext(filePath, name string) *normalizeContext {
	basePath := f.cwd
	if filePath != "" {
		basePath = filepath.Dir(filePath)
	}
	if name == "" {
		if filePath != "" {
			name = f.nameFromPath(filePath)
		} else {
			name = "config-data"
		}
	}
	return &normalizeContext{filePath: filePath, matchBasePath: basePath, name: name}
}

// importerPath is the path plugin and parser resolution starts from.
// In-memory configs resolve as if they lived in the working directory.
func (f *ConfigArrayFactory) importerPath(ctx *normalizeContext) string {
	if ctx.filePath != "" {
		return ctx.filePath
	}
	return filepath.Join(f.cwd, "__placeholder__.js")
}

// normalizeAny flattens a top-level config that is either an object or a
// pre-flattened sequence of fragments.
func (f *ConfigArrayFactory) normalizeAny(configData any, ctx *normalizeContext) elementSeq {
	return func(yield func(*configarray.Element, error) bool) {
		switch data := configData.(type) {
		case map[string]any:
			if err := f.validator.ValidateTopLevel(data, ctx.name); err != nil {
				yield(nil, err)
				return
			}
			forwardSeq(yield, f.normalizeObjectConfigData(data, ctx))

		case []any:
			for i, fragment := range data {
				fragmentName := fmt.Sprintf("%s[%d]", ctx.name, i)
				if err := f.validator.ValidateFragment(fragment, fragmentName); err != nil {
					yield(nil, err)
					return
				}
				switch frag := fragment.(type) {
				case string:
					if !forwardExtends(yield, f.loadExtends(frag, ctx.withName(fragmentName))) {
						return
					}
				case map[string]any:
					if !forwardSeq(yield, f.normalizeObjectConfigData(frag, ctx.withName(fragmentName))) {
						return
					}
				}
			}

		default:
			yield(nil, fmt.Errorf("config data for %s must be an object or an array, got %T", ctx.name, configData))
		}
	}
}

// normalizeObjectConfigData flattens one config object: its predicate is
// compiled from files/excludedFiles and conjoined onto every element the
// body yields. Predicated elements have root suppressed; only
// unconditional elements may declare root-ness.
func (f *ConfigArrayFactory) normalizeObjectConfigData(data map[string]any, ctx *normalizeContext) elementSeq {
	return func(yield func(*configarray.Element, error) bool) {
		tester := configarray.NewOverrideTester(
			toStringSlice(data["files"]),
			toStringSlice(data["excludedFiles"]),
			ctx.matchBasePath,
		)

		for el, err := range f.normalizeObjectConfigDataBody(data, ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			el.Criteria = configarray.AndTester(tester, el.Criteria)
			if el.Criteria != nil {
				el.Root = nil
			}
			if !yield(el, nil) {
				return
			}
		}
	}
}

// normalizeObjectConfigDataBody yields, in order: the elements of every
// extended config, auto-registered processor configs, the body element,
// and the elements of every override.
func (f *ConfigArrayFactory) normalizeObjectConfigDataBody(data map[string]any, ctx *normalizeContext) elementSeq {
	return func(yield func(*configarray.Element, error) bool) {
		for _, extendName := range toStringSlice(data["extends"]) {
			if !forwardExtends(yield, f.loadExtends(extendName, ctx)) {
				return
			}
		}

		body, plugins, err := f.buildBodyElement(data, ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		for _, synth := range autoProcessorConfigs(plugins) {
			name := fmt.Sprintf("%s#processors[%q]", ctx.name, synth["processor"])
			if !forwardSeq(yield, f.normalizeObjectConfigData(synth, ctx.withName(name))) {
				return
			}
		}

		if !yield(body, nil) {
			return
		}

		if overrides, ok := data["overrides"].([]any); ok {
			for i, item := range overrides {
				od, ok := item.(map[string]any)
				if !ok {
					continue
				}
				name := fmt.Sprintf("%s#overrides[%d]", ctx.name, i)
				if !forwardSeq(yield, f.normalizeObjectConfigData(od, ctx.withName(name))) {
					return
				}
			}
		}
	}
}

// buildBodyElement creates the element for the config's own fields,
// resolving its parser and plugins.
func (f *ConfigArrayFactory) buildBodyElement(data map[string]any, ctx *normalizeContext) (*configarray.Element, map[string]*configarray.PluginReference, error) {
	el := &configarray.Element{
		Name:     ctx.name,
		FilePath: ctx.filePath,
	}

	if v, ok := data["root"].(bool); ok {
		root := v
		el.Root = &root
	}
	if v, ok := data["env"].(map[string]any); ok {
		el.Env = v
	}
	if v, ok := data["globals"].(map[string]any); ok {
		el.Globals = v
	}
	if v, ok := data["parserOptions"].(map[string]any); ok {
		el.ParserOptions = v
	}
	if v, ok := data["rules"].(map[string]any); ok {
		el.Rules = v
	}
	if v, ok := data["settings"].(map[string]any); ok {
		el.Settings = v
	}
	if v, ok := data["processor"].(string); ok {
		el.Processor = v
	}
	if v, ok := data["noInlineConfig"].(bool); ok {
		flag := v
		el.NoInlineConfig = &flag
	}
	if v, ok := data["reportUnusedDisableDirectives"].(bool); ok {
		flag := v
		el.ReportUnusedDisableDirectives = &flag
	}

	importer := f.importerPath(ctx)

	if v, ok := data["parser"].(string); ok && v != "" {
		el.Parser = f.resolver.LoadParser(v, importer, ctx.name)
	}

	plugins, err := f.loadPlugins(data["plugins"], importer, ctx.name)
	if err != nil {
		return nil, nil, err
	}
	el.Plugins = plugins

	return el, plugins, nil
}

// loadPlugins resolves the plugins field, either a sequence of names or
// a mapping of prefix to package name. Malformed names fail fast; other
// load failures stay stored on the reference.
func (f *ConfigArrayFactory) loadPlugins(value any, importer, name string) (map[string]*configarray.PluginReference, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil

	case []any, []string:
		plugins := map[string]*configarray.PluginReference{}
		for _, pluginName := range toStringSlice(v) {
			ref := f.resolver.LoadPlugin(pluginName, importer, name)
			if isEagerReferenceError(ref.Error) {
				return nil, ref.Error
			}
			plugins[ref.ID] = ref
		}
		return plugins, nil

	case map[string]any:
		plugins := map[string]*configarray.PluginReference{}
		prefixes := make([]string, 0, len(v))
		for prefix := range v {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)
		for _, prefix := range prefixes {
			pkgName, ok := v[prefix].(string)
			if !ok {
				continue
			}
			ref := f.resolver.LoadPlugin(pkgName, importer, name)
			if isEagerReferenceError(ref.Error) {
				return nil, ref.Error
			}
			ref.ID = prefix
			plugins[prefix] = ref
		}
		return plugins, nil

	default:
		return nil, nil
	}
}

// isEagerReferenceError reports whether a stored reference error must
// fail normalization now rather than lie latent until extraction.
func isEagerReferenceError(err error) bool {
	var invalid *resolve.InvalidNameError
	return errors.As(err, &invalid)
}

// autoProcessorConfigs synthesizes file-matching configs for every
// extension-style processor the loaded plugins export, so files of those
// types pick up the processor without explicit configuration.
func autoProcessorConfigs(plugins map[string]*configarray.PluginReference) []map[string]any {
	var configs []map[string]any

	ids := make([]string, 0, len(plugins))
	for id := range plugins {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ref := plugins[id]
		if ref.Definition == nil || ref.Definition.Processors == nil {
			continue
		}
		procNames := make([]string, 0, len(ref.Definition.Processors))
		for procName := range ref.Definition.Processors {
			procNames = append(procNames, procName)
		}
		sort.Strings(procNames)

		for _, procName := range procNames {
			if !strings.HasPrefix(procName, ".") {
				continue
			}
			configs = append(configs, map[string]any{
				"files":     []any{"*" + procName},
				"processor": id + "/" + procName,
			})
		}
	}

	return configs
}

// loadExtends resolves one extends reference and yields the extended
// config's elements.
func (f *ConfigArrayFactory) loadExtends(extendName string, ctx *normalizeContext) elementSeq {
	return func(yield func(*configarray.Element, error) bool) {
		extend, err := f.resolver.ResolveExtends(extendName, f.importerPath(ctx), ctx.name)
		if err != nil {
			yield(nil, err)
			return
		}

		childName := ctx.name + " » " + extendName

		if extend.ConfigData != nil {
			if err := f.validator.ValidateTopLevel(extend.ConfigData, childName); err != nil {
				yield(nil, err)
				return
			}
			forwardSeq(yield, f.normalizeObjectConfigData(extend.ConfigData, ctx.withName(childName)))
			return
		}

		data, err := f.loader.Load(extend.FilePath)
		if err != nil {
			if errors.Is(err, configfile.ErrNotFound) {
				yield(nil, &resolve.ExtendMissingError{Name: extendName, ImporterPath: f.importerPath(ctx), Cause: err})
				return
			}
			yield(nil, err)
			return
		}
		if data == nil {
			yield(nil, &resolve.ExtendMissingError{Name: extendName, ImporterPath: f.importerPath(ctx)})
			return
		}

		childCtx := f.newContext(extend.FilePath, childName)
		forwardSeq(yield, f.normalizeAny(any(data), childCtx))
	}
}

// forwardSeq forwards a nested sequence through yield, reporting whether
// iteration may continue.
func forwardSeq(yield func(*configarray.Element, error) bool, seq elementSeq) bool {
	for el, err := range seq {
		if !yield(el, err) {
			return false
		}
		if err != nil {
			return false
		}
	}
	return true
}

// forwardExtends forwards extended elements, stripping root so that only
// the extending config can decide where the cascade stops.
func forwardExtends(yield func(*configarray.Element, error) bool, seq elementSeq) bool {
	for el, err := range seq {
		if err == nil && el != nil {
			el.Root = nil
		}
		if !yield(el, err) {
			return false
		}
		if err != nil {
			return false
		}
	}
	return true
}

// toStringSlice normalizes a config value to a string slice: a single
// string becomes one entry, a sequence keeps its string entries, and
// anything else is empty.
func toStringSlice(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
