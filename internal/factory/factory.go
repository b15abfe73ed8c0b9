package factory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/configfile"
	"github.com/dshills/lintconf/internal/resolve"
	"github.com/dshills/lintconf/internal/schema"
)

// ConfigFilenames is the ordered list of per-directory config file
// candidates. The first that exists and yields config data wins.
var ConfigFilenames = []string{
	".eslintrc.js",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc.json",
	".eslintrc",
	"package.json",
}

// ConfigArrayFactory creates config arrays from data, files, and
// directories.
type ConfigArrayFactory struct {
	cwd       string
	loader    *configfile.Loader
	validator *schema.Validator
	resolver  *resolve.Resolver

	fs           configfile.FileSystem
	evaluator    configfile.ScriptEvaluator
	modules      resolve.ModuleResolver
	pluginPool   map[string]*configarray.PluginDefinition
	builtIns     map[string]map[string]any
	onDeprecated func(source, key, message string)
}

// Option configures a ConfigArrayFactory.
type Option func(*ConfigArrayFactory)

// WithCwd sets the working directory used to name configs.
func WithCwd(cwd string) Option {
	return func(f *ConfigArrayFactory) {
		f.cwd = cwd
	}
}

// WithFileSystem sets the file system for all reads.
func WithFileSystem(fsys configfile.FileSystem) Option {
	return func(f *ConfigArrayFactory) {
		f.fs = fsys
	}
}

// WithScriptEvaluator sets the evaluator for script configs.
func WithScriptEvaluator(ev configfile.ScriptEvaluator) Option {
	return func(f *ConfigArrayFactory) {
		f.evaluator = ev
	}
}

// WithModuleResolver replaces the package resolution algorithm.
func WithModuleResolver(m resolve.ModuleResolver) Option {
	return func(f *ConfigArrayFactory) {
		f.modules = m
	}
}

// WithPluginPool provides preloaded plugin definitions consulted before
// filesystem resolution.
func WithPluginPool(pool map[string]*configarray.PluginDefinition) Option {
	return func(f *ConfigArrayFactory) {
		f.pluginPool = pool
	}
}

// WithBuiltInConfigs replaces the table backing eslint:* references.
func WithBuiltInConfigs(table map[string]map[string]any) Option {
	return func(f *ConfigArrayFactory) {
		f.builtIns = table
	}
}

// WithDeprecationHandler sets the callback invoked when a config uses a
// deprecated key such as ecmaFeatures.
func WithDeprecationHandler(fn func(source, key, message string)) Option {
	return func(f *ConfigArrayFactory) {
		f.onDeprecated = fn
	}
}

// New creates a ConfigArrayFactory.
func New(opts ...Option) *ConfigArrayFactory {
	f := &ConfigArrayFactory{}

	for _, opt := range opts {
		opt(f)
	}

	if f.cwd == "" {
		if cwd, err := os.Getwd(); err == nil {
			f.cwd = cwd
		} else {
			f.cwd = string(filepath.Separator)
		}
	}
	if f.fs == nil {
		f.fs = configfile.DefaultFS()
	}

	loaderOpts := []configfile.LoaderOption{configfile.WithFileSystem(f.fs)}
	if f.evaluator != nil {
		loaderOpts = append(loaderOpts, configfile.WithScriptEvaluator(f.evaluator))
	}
	f.loader = configfile.NewLoader(loaderOpts...)

	var validatorOpts []schema.ValidatorOption
	if f.onDeprecated != nil {
		validatorOpts = append(validatorOpts, schema.WithDeprecationHandler(f.onDeprecated))
	}
	f.validator = schema.NewValidator(validatorOpts...)

	var resolverOpts []resolve.Option
	if f.modules != nil {
		resolverOpts = append(resolverOpts, resolve.WithModuleResolver(f.modules))
	}
	if f.pluginPool != nil {
		resolverOpts = append(resolverOpts, resolve.WithPluginPool(f.pluginPool))
	}
	if f.builtIns != nil {
		resolverOpts = append(resolverOpts, resolve.WithBuiltInConfigs(f.builtIns))
	}
	f.resolver = resolve.New(f.loader, resolverOpts...)

	return f
}

// Loader returns the factory's config file loader.
func (f *ConfigArrayFactory) Loader() *configfile.Loader {
	return f.loader
}

// Cwd returns the factory's working directory.
func (f *ConfigArrayFactory) Cwd() string {
	return f.cwd
}

// LoadOptions name a config and attach it to a parent array.
type LoadOptions struct {
	// Name is the logical config name; defaults to the file path
	// relative to the factory's working directory, or "config-data"
	// for in-memory data without a FilePath.
	Name string
	// FilePath is the origin of in-memory config data.
	FilePath string
	// Parent is prepended to the result unless the result is root.
	Parent *configarray.ConfigArray
}

// Create builds a config array from in-memory config data. The data may
// be a single config object or a pre-flattened sequence of fragments
// (objects, or strings resolved as extends references).
func (f *ConfigArrayFactory) Create(configData any, opts LoadOptions) (*configarray.ConfigArray, error) {
	if configData == nil {
		return configarray.New().Concat(opts.Parent), nil
	}

	ctx := f.newContext(opts.FilePath, opts.Name)
	elements, err := f.materialize(f.normalizeAny(configData, ctx))
	if err != nil {
		return nil, err
	}

	return configarray.New(elements...).Concat(opts.Parent), nil
}

// LoadFile builds a config array from an explicitly requested config
// file. A missing file is an error here: the caller asked for it.
func (f *ConfigArrayFactory) LoadFile(path string, opts LoadOptions) (*configarray.ConfigArray, error) {
	filePath := path
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(f.cwd, filePath)
	}

	data, err := f.loader.Load(filePath)
	if err != nil {
		if errors.Is(err, configfile.ErrNotFound) {
			return nil, &configfile.ReadError{Path: filePath, Cause: err}
		}
		return nil, err
	}
	if data == nil {
		return nil, &configfile.ReadError{Path: filePath, Cause: fmt.Errorf("no config data found")}
	}

	name := opts.Name
	if name == "" {
		name = f.nameFromPath(filePath)
	}

	ctx := f.newContext(filePath, name)
	elements, err := f.materialize(f.normalizeAny(any(data), ctx))
	if err != nil {
		return nil, err
	}

	return configarray.New(elements...).Concat(opts.Parent), nil
}

// LoadOnDirectory builds a config array from the directory's own config
// file, trying each candidate file name in order. Returns (nil, nil)
// when the directory has no config.
func (f *ConfigArrayFactory) LoadOnDirectory(dir string, opts LoadOptions) (*configarray.ConfigArray, error) {
	for _, filename := range ConfigFilenames {
		filePath := filepath.Join(dir, filename)

		data, err := f.loader.Load(filePath)
		if err != nil {
			if errors.Is(err, configfile.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if data == nil {
			// A package.json without the config member is "no config
			// here", so the remaining candidates still get a chance.
			continue
		}

		name := opts.Name
		if name == "" {
			name = f.nameFromPath(filePath)
		}

		ctx := f.newContext(filePath, name)
		elements, err := f.materialize(f.normalizeAny(any(data), ctx))
		if err != nil {
			return nil, err
		}

		return configarray.New(elements...).Concat(opts.Parent), nil
	}

	return nil, nil
}

// materialize drains a lazy element sequence, stopping at the first
// error.
func (f *ConfigArrayFactory) materialize(seq elementSeq) ([]*configarray.Element, error) {
	var elements []*configarray.Element
	for el, err := range seq {
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return elements, nil
}

// nameFromPath names a config by its path relative to the working
// directory.
func (f *ConfigArrayFactory) nameFromPath(filePath string) string {
	if rel, err := filepath.Rel(f.cwd, filePath); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(filePath)
}
