package resolve

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/configfile"
)

// Built-in config names.
const (
	builtInPrefix = "eslint:"
	pluginPrefix  = "plugin:"

	configNamePrefix = "eslint-config"
	pluginNamePrefix = "eslint-plugin"
)

// Extend is a resolved extends target: either raw config data (built-in
// table entries and plugin configs) or a file path to load.
type Extend struct {
	// Name is the specifier as written.
	Name string
	// FilePath is set for package- and path-based targets.
	FilePath string
	// ConfigData is set for built-in and plugin-provided targets.
	ConfigData map[string]any
}

// Resolver resolves extends, plugins, and parser specifiers.
type Resolver struct {
	fs       configfile.FileSystem
	loader   *configfile.Loader
	modules  ModuleResolver
	pool     map[string]*configarray.PluginDefinition
	builtIns map[string]map[string]any
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithModuleResolver replaces the module resolution algorithm.
func WithModuleResolver(m ModuleResolver) Option {
	return func(r *Resolver) {
		r.modules = m
	}
}

// WithPluginPool provides preloaded plugin definitions, keyed by long
// name or shorthand id. The pool is consulted before the filesystem.
func WithPluginPool(pool map[string]*configarray.PluginDefinition) Option {
	return func(r *Resolver) {
		r.pool = pool
	}
}

// WithBuiltInConfigs replaces the table backing eslint:* references.
func WithBuiltInConfigs(table map[string]map[string]any) Option {
	return func(r *Resolver) {
		r.builtIns = table
	}
}

// New creates a Resolver that reads through the given loader.
func New(loader *configfile.Loader, opts ...Option) *Resolver {
	r := &Resolver{
		fs:       loader.FS(),
		loader:   loader,
		builtIns: DefaultBuiltInConfigs(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.modules == nil {
		r.modules = NewFileResolver(r.fs)
	}

	return r
}

// DefaultBuiltInConfigs returns the built-in extends table. The rule
// tables live with the lint engine; at this layer the built-ins exist so
// references resolve and cascade structurally.
func DefaultBuiltInConfigs() map[string]map[string]any {
	return map[string]map[string]any{
		"eslint:recommended": {"rules": map[string]any{}},
		"eslint:all":         {"rules": map[string]any{}},
	}
}

// ResolveExtends resolves one extends specifier relative to the config
// that referenced it. All failures here are eager: the user explicitly
// asked for this config.
func (r *Resolver) ResolveExtends(name, importerPath, importerName string) (*Extend, error) {
	if err := checkName(name); err != nil {
		return nil, &ExtendMissingError{Name: name, ImporterPath: importerPath, Cause: err}
	}

	switch {
	case strings.HasPrefix(name, builtInPrefix):
		data, ok := r.builtIns[name]
		if !ok {
			return nil, &ExtendMissingError{Name: name, ImporterPath: importerPath}
		}
		return &Extend{Name: name, ConfigData: data}, nil

	case strings.HasPrefix(name, pluginPrefix):
		return r.resolvePluginConfig(name, importerPath, importerName)

	case isPackageRequest(name):
		longName := NormalizePackageName(name, configNamePrefix)
		filePath, err := r.modules.Resolve(longName, importerPath)
		if err != nil {
			return nil, &ExtendMissingError{Name: name, ImporterPath: importerPath, Cause: err}
		}
		return &Extend{Name: name, FilePath: filePath}, nil

	case filepath.IsAbs(name):
		return &Extend{Name: name, FilePath: name}, nil

	default:
		return &Extend{Name: name, FilePath: filepath.Join(filepath.Dir(importerPath), name)}, nil
	}
}

// resolvePluginConfig resolves a plugin:pkg/name reference to the named
// entry of the plugin's configs table.
func (r *Resolver) resolvePluginConfig(name, importerPath, importerName string) (*Extend, error) {
	rest := strings.TrimPrefix(name, pluginPrefix)
	sep := strings.LastIndex(rest, "/")
	if sep <= 0 || sep == len(rest)-1 {
		return nil, &ExtendMissingError{
			Name:         name,
			ImporterPath: importerPath,
			Cause:        &InvalidNameError{Name: name, Reason: "plugin configs are named plugin:package/config"},
		}
	}

	pluginName, configName := rest[:sep], rest[sep+1:]
	ref := r.LoadPlugin(pluginName, importerPath, importerName)
	if ref.Error != nil {
		// Extends use is explicit, so the stored error surfaces now.
		return nil, ref.Error
	}

	data, ok := ref.Definition.Configs[configName]
	if !ok {
		return nil, &ExtendMissingError{Name: name, ImporterPath: importerPath}
	}
	configData, ok := data.(map[string]any)
	if !ok {
		return nil, &ExtendMissingError{Name: name, ImporterPath: importerPath}
	}

	return &Extend{Name: name, ConfigData: configData}, nil
}

// LoadPlugin resolves a plugin specifier to a reference. Malformed names
// fail fast through the reference's stored error being raised by the
// caller for explicit uses; module-not-found failures are stored for
// lazy raising at extraction.
func (r *Resolver) LoadPlugin(name, importerPath, importerName string) *configarray.PluginReference {
	longName := NormalizePackageName(name, pluginNamePrefix)
	id := ShorthandName(longName, pluginNamePrefix)

	ref := &configarray.PluginReference{
		ID:           id,
		ImporterPath: importerPath,
		ImporterName: importerName,
	}

	if err := checkName(name); err != nil {
		ref.Error = err
		return ref
	}

	if def := r.poolLookup(longName, id); def != nil {
		ref.Definition = def
		return ref
	}

	filePath, err := r.modules.Resolve(longName, importerPath)
	if err != nil {
		ref.Error = &PluginMissingError{LongName: longName, ImporterPath: importerPath, Cause: err}
		return ref
	}

	raw, err := r.loader.Load(filePath)
	if err != nil {
		if errors.Is(err, configfile.ErrNotFound) {
			ref.Error = &PluginMissingError{LongName: longName, ImporterPath: importerPath, Cause: err}
			return ref
		}
		ref.Error = err
		return ref
	}

	ref.FilePath = filePath
	ref.Definition = definitionFromRaw(raw)
	return ref
}

// LoadParser resolves a parser specifier to a reference with lazy-error
// semantics.
func (r *Resolver) LoadParser(name, importerPath, importerName string) *configarray.ParserReference {
	ref := &configarray.ParserReference{
		ID:           name,
		ImporterPath: importerPath,
		ImporterName: importerName,
	}

	if err := checkName(name); err != nil {
		ref.Error = err
		return ref
	}

	filePath, err := r.modules.Resolve(name, importerPath)
	if err != nil {
		ref.Error = &ParserMissingError{Name: name, ImporterPath: importerPath, Cause: err}
		return ref
	}

	definition, err := r.loader.Load(filePath)
	if err != nil {
		ref.Error = &ParserMissingError{Name: name, ImporterPath: importerPath, Cause: err}
		return ref
	}

	ref.FilePath = filePath
	ref.Definition = definition
	return ref
}

// poolLookup consults the additional plugin pool under both the long
// name and the shorthand id.
func (r *Resolver) poolLookup(longName, id string) *configarray.PluginDefinition {
	if r.pool == nil {
		return nil
	}
	if def, ok := r.pool[longName]; ok {
		return def
	}
	if def, ok := r.pool[id]; ok {
		return def
	}
	return nil
}

// definitionFromRaw shapes a loaded plugin module into a definition.
func definitionFromRaw(raw map[string]any) *configarray.PluginDefinition {
	def := &configarray.PluginDefinition{}
	if v, ok := raw["configs"].(map[string]any); ok {
		def.Configs = v
	}
	if v, ok := raw["environments"].(map[string]any); ok {
		def.Environments = v
	}
	if v, ok := raw["processors"].(map[string]any); ok {
		def.Processors = v
	}
	if v, ok := raw["rules"].(map[string]any); ok {
		def.Rules = v
	}
	return def
}
