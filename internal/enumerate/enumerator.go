package enumerate

import (
	"fmt"
	"iter"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/dshills/lintconf/internal/cascade"
	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/configfile"
)

// Flag annotates an enumerated file.
type Flag int

// Enumeration flags.
const (
	// FlagNone marks a file to process normally.
	FlagNone Flag = iota
	// FlagIgnored marks a file matched during a walk but suppressed by
	// the ignore predicate.
	FlagIgnored
	// FlagWarning marks a file named directly on the command line that
	// the ignore predicate suppresses.
	FlagWarning
)

// FileAndConfig is one enumerated file with its finalized configuration.
type FileAndConfig struct {
	// Path is the absolute file path.
	Path string
	// Config is the finalized config array for the file's directory.
	Config *configarray.ConfigArray
	// Flag annotates ignore handling.
	Flag Flag
}

// IgnoredPaths decides whether a path is ignored. The rules behind the
// decision (ignore files, defaults) live with the caller.
type IgnoredPaths interface {
	Contains(path string) bool
}

// noIgnores ignores nothing.
type noIgnores struct{}

func (noIgnores) Contains(string) bool { return false }

// DefaultExtensions are the file extensions enumerated without explicit
// configuration.
var DefaultExtensions = []string{".js"}

// FileEnumerator expands input patterns into (file, config, flag)
// tuples. Not safe for concurrent use.
type FileEnumerator struct {
	cwd       string
	cascaded  *cascade.CascadedFactory
	fs        configfile.FileSystem
	ignored   IgnoredPaths
	extRegExp *regexp.Regexp
}

// Option configures a FileEnumerator.
type Option func(*FileEnumerator)

// WithCwd sets the directory patterns are resolved against.
func WithCwd(cwd string) Option {
	return func(e *FileEnumerator) {
		e.cwd = cwd
	}
}

// WithExtensions sets the extensions enumerated by default.
func WithExtensions(extensions []string) Option {
	return func(e *FileEnumerator) {
		e.extRegExp = extensionsRegExp(extensions)
	}
}

// WithIgnoredPaths sets the ignore predicate.
func WithIgnoredPaths(ignored IgnoredPaths) Option {
	return func(e *FileEnumerator) {
		e.ignored = ignored
	}
}

// New creates a FileEnumerator over the given cascaded factory.
func New(c *cascade.CascadedFactory, opts ...Option) *FileEnumerator {
	e := &FileEnumerator{
		cascaded:  c,
		fs:        c.Factory().Loader().FS(),
		ignored:   noIgnores{},
		extRegExp: extensionsRegExp(DefaultExtensions),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.cwd == "" {
		e.cwd = c.Factory().Cwd()
	}

	return e
}

// extensionsRegExp compiles the extension set into a suffix test.
func extensionsRegExp(extensions []string) *regexp.Regexp {
	quoted := make([]string, len(extensions))
	for i, ext := range extensions {
		quoted[i] = regexp.QuoteMeta(ext)
	}
	return regexp.MustCompile("(?:" + strings.Join(quoted, "|") + ")$")
}

// IterateFiles yields one FileAndConfig per target file, in input
// pattern order, deduplicated by absolute path. Pulling the sequence
// performs the filesystem walk on demand; consumers may stop early.
func (e *FileEnumerator) IterateFiles(patterns []string) iter.Seq2[*FileAndConfig, error] {
	return func(yield func(*FileAndConfig, error) bool) {
		seen := map[string]bool{}

		emit := func(item *FileAndConfig) bool {
			if seen[item.Path] {
				return true
			}
			seen[item.Path] = true
			return yield(item, nil)
		}

		for _, pattern := range patterns {
			if !e.iteratePattern(pattern, emit, yield) {
				return
			}
		}
	}
}

// iteratePattern classifies one input pattern and walks it.
func (e *FileEnumerator) iteratePattern(pattern string, emit func(*FileAndConfig) bool, yield func(*FileAndConfig, error) bool) bool {
	absPath := pattern
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(e.cwd, pattern)
	}
	absPath = filepath.Clean(absPath)

	if info, err := e.fs.Stat(absPath); err == nil {
		if !info.IsDir() {
			return e.iterateFile(absPath, emit, yield)
		}
		return e.iterateDirectory(absPath, nil, true, emit, yield)
	}

	return e.iterateGlob(pattern, emit, yield)
}

// iterateFile yields one directly named file. Ignored files surface
// with a warning flag rather than silently disappearing: the caller
// asked for them by name.
func (e *FileEnumerator) iterateFile(absPath string, emit func(*FileAndConfig) bool, yield func(*FileAndConfig, error) bool) bool {
	config, err := e.cascaded.ConfigArrayForFile(absPath)
	if err != nil {
		return yield(nil, err)
	}

	flag := FlagNone
	if e.ignored.Contains(absPath) {
		flag = FlagWarning
	}
	return emit(&FileAndConfig{Path: absPath, Config: config, Flag: flag})
}

// iterateDirectory walks a directory tree rooted at absPath.
func (e *FileEnumerator) iterateDirectory(absPath string, selector *globSelector, recursive bool, emit func(*FileAndConfig) bool, yield func(*FileAndConfig, error) bool) bool {
	parent, err := e.cascaded.LoadInAncestors(absPath)
	if err != nil {
		return yield(nil, err)
	}
	return e.iterateRecursive(absPath, parent, selector, recursive, emit, yield)
}

// iterateGlob walks the literal parent directory of a glob pattern with
// the glob as selector.
func (e *FileEnumerator) iterateGlob(pattern string, emit func(*FileAndConfig) bool, yield func(*FileAndConfig, error) bool) bool {
	slashed := filepath.ToSlash(pattern)
	parent, remainder := globParent(slashed)

	walkDir := filepath.FromSlash(parent)
	if !filepath.IsAbs(walkDir) {
		walkDir = filepath.Join(e.cwd, walkDir)
	}
	walkDir = filepath.Clean(walkDir)

	if _, err := e.fs.Stat(walkDir); err != nil {
		// Nothing on disk under the literal prefix; the pattern simply
		// matches no files.
		return true
	}

	selector := &globSelector{pattern: slashed, cwd: e.cwd}
	return e.iterateDirectory(walkDir, selector, globIsRecursive(remainder), emit, yield)
}

// iterateRecursive walks one directory: loads its own config, yields
// matching files, and descends into subdirectories when recursion is on.
func (e *FileEnumerator) iterateRecursive(dir string, parentConfig *configarray.ConfigArray, selector *globSelector, recursive bool, emit func(*FileAndConfig) bool, yield func(*FileAndConfig, error) bool) bool {
	config, err := e.cascaded.LoadOnDirectory(dir, parentConfig)
	if err != nil {
		return yield(nil, err)
	}
	finalized, err := e.cascaded.Finalize(config)
	if err != nil {
		return yield(nil, err)
	}

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		return yield(nil, fmt.Errorf("reading directory %s: %w", dir, err))
	}

	for _, entry := range entries {
		absPath := filepath.Join(dir, entry.Name())
		ignored := e.ignored.Contains(absPath)

		if entry.IsDir() {
			if ignored || !recursive {
				continue
			}
			if !e.iterateRecursive(absPath, config, selector, recursive, emit, yield) {
				return false
			}
			continue
		}

		matched := false
		if selector != nil {
			matched = selector.match(absPath)
		} else {
			matched = e.extRegExp.MatchString(entry.Name()) || finalized.MatchesFile(absPath)
		}
		if !matched {
			continue
		}

		flag := FlagNone
		if ignored {
			flag = FlagIgnored
		}
		if !emit(&FileAndConfig{Path: absPath, Config: finalized, Flag: flag}) {
			return false
		}
	}

	return true
}

// globSelector matches walked files against the original glob pattern.
type globSelector struct {
	pattern string
	cwd     string
}

// match tests an absolute file path against the pattern. Relative
// patterns are evaluated against the path relative to the enumerator's
// working directory.
func (s *globSelector) match(absPath string) bool {
	target := filepath.ToSlash(absPath)
	if !strings.HasPrefix(s.pattern, "/") && !filepath.IsAbs(filepath.FromSlash(s.pattern)) {
		rel, err := filepath.Rel(s.cwd, absPath)
		if err != nil {
			return false
		}
		target = filepath.ToSlash(rel)
	}

	ok, err := doublestar.Match(s.pattern, target)
	return err == nil && ok
}
