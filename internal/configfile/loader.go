package configfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
	// ReadDir reads the directory named by path.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadDir reads the directory named by path.
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Loader reads raw configuration data from files, choosing a parse
// strategy by file name.
type Loader struct {
	fs        FileSystem
	evaluator ScriptEvaluator
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system used for reads.
func WithFileSystem(fsys FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithScriptEvaluator sets the evaluator used for script configs.
func WithScriptEvaluator(ev ScriptEvaluator) LoaderOption {
	return func(l *Loader) {
		l.evaluator = ev
	}
}

// NewLoader creates a new config file loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:        DefaultFS(),
		evaluator: NewLuaEvaluator(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// FS returns the loader's file system.
func (l *Loader) FS() FileSystem {
	return l.fs
}

// Load reads the config file at path and returns the raw configuration
// map. The parse strategy is chosen by file name:
//
//   - package.json: JSON; the eslintConfig member or nil if absent
//   - *.json: JSON with line and block comments stripped
//   - *.yaml, *.yml: YAML (a null document yields an empty config)
//   - .eslintrc with no extension: YAML
//   - *.js and anything else: evaluated as a script
//
// A missing file returns an error satisfying errors.Is(err, ErrNotFound).
// A present package.json without an eslintConfig member returns (nil, nil).
func (l *Loader) Load(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ReadError{Path: path, Cause: err}
	}

	switch base := filepath.Base(path); {
	case base == "package.json":
		return l.parsePackageJSON(path, data)
	case strings.HasSuffix(base, ".json"):
		return l.parseJSON(path, data)
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return l.parseYAML(path, data)
	case base == ".eslintrc":
		// Legacy contract: extensionless config files parse as YAML,
		// which also accepts plain JSON.
		return l.parseYAML(path, data)
	default:
		return l.parseScript(path, data)
	}
}

// parseScript evaluates a script config and returns the exported map.
// Scripts are evaluated fresh on every load; nothing is cached between
// loads so script-side mutation cannot poison later reads.
func (l *Loader) parseScript(path string, data []byte) (map[string]any, error) {
	config, err := l.evaluator.Evaluate(path, data)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return config, nil
}
