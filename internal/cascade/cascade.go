package cascade

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/factory"
)

// CascadedFactory layers per-directory discovery, the ancestor walk, and
// finalization on top of a ConfigArrayFactory. It is not safe for
// concurrent use; callers needing parallelism use one instance per
// goroutine with disjoint inputs.
type CascadedFactory struct {
	factory *factory.ConfigArrayFactory

	baseConfigData     map[string]any
	cliConfigData      map[string]any
	specificConfigPath string
	useEslintrc        bool
	usePersonalConfig  bool
	homeDir            string

	base *configarray.ConfigArray
	cli  *configarray.ConfigArray

	configCache   map[string]*configarray.ConfigArray
	finalizeCache map[*configarray.ConfigArray]*configarray.ConfigArray
}

// Option configures a CascadedFactory.
type Option func(*CascadedFactory)

// WithBaseConfig supplies the caller's base configuration, layered below
// everything discovered on disk.
func WithBaseConfig(configData map[string]any) Option {
	return func(c *CascadedFactory) {
		c.baseConfigData = configData
	}
}

// WithCLIConfig supplies inline command-line options, layered above
// everything else.
func WithCLIConfig(configData map[string]any) Option {
	return func(c *CascadedFactory) {
		c.cliConfigData = configData
	}
}

// WithSpecificConfigPath names a config file to layer between discovered
// configs and CLI options (the --config flag).
func WithSpecificConfigPath(path string) Option {
	return func(c *CascadedFactory) {
		c.specificConfigPath = path
	}
}

// WithUseEslintrc controls whether per-directory config files are
// discovered at all.
func WithUseEslintrc(use bool) Option {
	return func(c *CascadedFactory) {
		c.useEslintrc = use
	}
}

// WithPersonalConfig enables falling back to the home directory config
// when the walk finds no project config.
func WithPersonalConfig(use bool) Option {
	return func(c *CascadedFactory) {
		c.usePersonalConfig = use
	}
}

// WithHomeDir overrides the home directory used for the personal config
// fallback.
func WithHomeDir(dir string) Option {
	return func(c *CascadedFactory) {
		c.homeDir = dir
	}
}

// New creates a CascadedFactory over the given config array factory.
func New(f *factory.ConfigArrayFactory, opts ...Option) *CascadedFactory {
	c := &CascadedFactory{
		factory:       f,
		useEslintrc:   true,
		configCache:   map[string]*configarray.ConfigArray{},
		finalizeCache: map[*configarray.ConfigArray]*configarray.ConfigArray{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.homeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.homeDir = home
		}
	}

	return c
}

// Factory returns the underlying config array factory.
func (c *CascadedFactory) Factory() *factory.ConfigArrayFactory {
	return c.factory
}

// LoadInAncestors assembles the configuration in effect above leafDir:
// every ancestor directory's own config from the nearest root (or the
// filesystem root) down to leafDir's parent, on top of the base config
// unless a root config cut the base off. leafDir's own config is not
// included; the enumerator loads it while walking.
func (c *CascadedFactory) LoadInAncestors(leafDir string) (*configarray.ConfigArray, error) {
	result, err := c.configArrayForDirectory(filepath.Dir(filepath.Clean(leafDir)))
	if err != nil {
		return nil, err
	}

	if c.usePersonalConfig && !hasProjectConfig(result) {
		personal, err := c.factory.LoadOnDirectory(c.homeDir, factory.LoadOptions{
			Name:   "PersonalConfig",
			Parent: result,
		})
		if err != nil && !errors.Is(err, fs.ErrPermission) {
			return nil, err
		}
		if personal != nil {
			result = personal
		}
	}

	return result, nil
}

// LoadOnDirectory loads dir's own config on top of parent. When the
// directory has no config, parent is returned by identity so callers
// can key caches off the result.
func (c *CascadedFactory) LoadOnDirectory(dir string, parent *configarray.ConfigArray) (*configarray.ConfigArray, error) {
	if !c.useEslintrc {
		return parent, nil
	}

	own, err := c.factory.LoadOnDirectory(dir, factory.LoadOptions{Parent: parent})
	if err != nil {
		return nil, err
	}
	if own == nil {
		return parent, nil
	}
	return own, nil
}

// Finalize composes the concrete array used for enumeration: the given
// array (base + ancestors + per-directory) followed by the --config file
// and CLI option layers. Results are memoized by array identity.
func (c *CascadedFactory) Finalize(array *configarray.ConfigArray) (*configarray.ConfigArray, error) {
	if array == nil {
		var err error
		if array, err = c.baseArray(); err != nil {
			return nil, err
		}
	}

	if final, ok := c.finalizeCache[array]; ok {
		return final, nil
	}

	cli, err := c.cliArray()
	if err != nil {
		return nil, err
	}

	final := array
	if cli != nil && len(cli.Elements) > 0 {
		elements := make([]*configarray.Element, 0, len(array.Elements)+len(cli.Elements))
		elements = append(elements, array.Elements...)
		elements = append(elements, cli.Elements...)
		final = configarray.New(elements...)
	}

	c.finalizeCache[array] = final
	return final, nil
}

// ConfigArrayForFile returns the finalized configuration for one file:
// ancestors of its directory, the directory's own config, then the CLI
// layers.
func (c *CascadedFactory) ConfigArrayForFile(filePath string) (*configarray.ConfigArray, error) {
	dir := filepath.Dir(filePath)

	ancestors, err := c.LoadInAncestors(dir)
	if err != nil {
		return nil, err
	}
	withOwn, err := c.LoadOnDirectory(dir, ancestors)
	if err != nil {
		return nil, err
	}
	return c.Finalize(withOwn)
}

// configArrayForDirectory returns the config in effect for dir: its own
// config and its ancestors', memoized per directory. A config declaring
// root truncates everything above it, including the base.
func (c *CascadedFactory) configArrayForDirectory(dir string) (*configarray.ConfigArray, error) {
	dir = filepath.Clean(dir)
	if cached, ok := c.configCache[dir]; ok {
		return cached, nil
	}

	if !c.useEslintrc {
		base, err := c.baseArray()
		if err != nil {
			return nil, err
		}
		c.configCache[dir] = base
		return base, nil
	}

	own, err := c.factory.LoadOnDirectory(dir, factory.LoadOptions{})
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			// The walk ends here as if it had reached the root.
			base, berr := c.baseArray()
			if berr != nil {
				return nil, berr
			}
			c.configCache[dir] = base
			return base, nil
		}
		return nil, err
	}

	if own != nil && own.IsRoot() {
		c.configCache[dir] = own
		return own, nil
	}

	var parent *configarray.ConfigArray
	if parentDir := filepath.Dir(dir); parentDir != dir {
		if parent, err = c.configArrayForDirectory(parentDir); err != nil {
			return nil, err
		}
	} else if parent, err = c.baseArray(); err != nil {
		return nil, err
	}

	result := parent
	if own != nil {
		result = own.Concat(parent)
	}

	c.configCache[dir] = result
	return result, nil
}

// baseArray lazily normalizes the caller-supplied base config.
func (c *CascadedFactory) baseArray() (*configarray.ConfigArray, error) {
	if c.base != nil {
		return c.base, nil
	}

	if c.baseConfigData == nil {
		c.base = configarray.New()
		return c.base, nil
	}

	base, err := c.factory.Create(c.baseConfigData, factory.LoadOptions{Name: "BaseConfig"})
	if err != nil {
		return nil, err
	}
	c.base = base
	return base, nil
}

// cliArray lazily builds the --config file and CLI option layers.
func (c *CascadedFactory) cliArray() (*configarray.ConfigArray, error) {
	if c.cli != nil {
		return c.cli, nil
	}

	var fileArray *configarray.ConfigArray
	if c.specificConfigPath != "" {
		loaded, err := c.factory.LoadFile(c.specificConfigPath, factory.LoadOptions{Name: "--config"})
		if err != nil {
			return nil, err
		}
		fileArray = loaded
	}

	if c.cliConfigData == nil {
		if fileArray == nil {
			fileArray = configarray.New()
		}
		c.cli = fileArray
		return c.cli, nil
	}

	cli, err := c.factory.Create(c.cliConfigData, factory.LoadOptions{Name: "CLIOptions", Parent: fileArray})
	if err != nil {
		return nil, err
	}
	c.cli = cli
	return c.cli, nil
}

// hasProjectConfig reports whether any element was loaded from a file,
// i.e. whether the walk actually found configuration on disk.
func hasProjectConfig(array *configarray.ConfigArray) bool {
	if array == nil {
		return false
	}
	for _, el := range array.Elements {
		if el.FilePath != "" {
			return true
		}
	}
	return false
}
