package configarray

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/sjson"
)

// matchPattern is one compiled include/exclude set, anchored at the
// directory of the config that declared it.
type matchPattern struct {
	includes []string
	excludes []string
	basePath string
}

// OverrideTester is a compiled predicate over file paths, built from the
// files/excludedFiles globs of an override. A nil *OverrideTester means
// "applies to every file"; testers produced by AndTester conjoin all of
// their pattern sets.
//
// Glob semantics: dot-files match, patterns without a separator match the
// base name at any depth, matching is case-sensitive.
type OverrideTester struct {
	patterns []matchPattern
	json     string
}

// NewOverrideTester compiles the given glob sets relative to basePath.
// Returns nil when both sets are empty.
func NewOverrideTester(files, excludedFiles []string, basePath string) *OverrideTester {
	if len(files) == 0 && len(excludedFiles) == 0 {
		return nil
	}

	p := matchPattern{
		includes: append([]string(nil), files...),
		excludes: append([]string(nil), excludedFiles...),
		basePath: basePath,
	}

	return &OverrideTester{
		patterns: []matchPattern{p},
		json:     patternsJSON([]matchPattern{p}),
	}
}

// AndTester returns a predicate that is the logical AND of a and b.
// Either side may be nil, in which case the other is returned unchanged.
func AndTester(a, b *OverrideTester) *OverrideTester {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	patterns := make([]matchPattern, 0, len(a.patterns)+len(b.patterns))
	patterns = append(patterns, a.patterns...)
	patterns = append(patterns, b.patterns...)

	return &OverrideTester{
		patterns: patterns,
		json:     patternsJSON(patterns),
	}
}

// Test reports whether filePath satisfies every pattern set. Each set
// tests the path relative to its own base path: with includes only, some
// include must match; with excludes only, no exclude may match; with
// both, an include must match and no exclude may.
func (t *OverrideTester) Test(filePath string) bool {
	for _, p := range t.patterns {
		rel, err := filepath.Rel(p.basePath, filePath)
		if err != nil {
			return false
		}
		rel = filepath.ToSlash(rel)

		if len(p.includes) > 0 && !anyGlobMatch(p.includes, rel) {
			return false
		}
		if len(p.excludes) > 0 && anyGlobMatch(p.excludes, rel) {
			return false
		}
	}
	return true
}

// String returns a stable JSON descriptor of the predicate's origin,
// usable for debug output and equality checks.
func (t *OverrideTester) String() string {
	if t == nil {
		return "null"
	}
	return t.json
}

// anyGlobMatch reports whether any pattern matches the slash-separated
// relative path.
func anyGlobMatch(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if globMatch(pattern, relPath) {
			return true
		}
	}
	return false
}

// globMatch matches one glob pattern against a relative path. A pattern
// with no separator matches the base name at any depth.
func globMatch(pattern, relPath string) bool {
	target := relPath
	if !strings.Contains(pattern, "/") {
		target = path.Base(relPath)
	}
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}

// patternsJSON renders the pattern sets as a stable JSON array.
func patternsJSON(patterns []matchPattern) string {
	out := "[]"
	for i, p := range patterns {
		prefix := strconv.Itoa(i)
		out, _ = sjson.Set(out, prefix+".includes", stringsOrEmpty(p.includes))
		out, _ = sjson.Set(out, prefix+".excludes", stringsOrEmpty(p.excludes))
		out, _ = sjson.Set(out, prefix+".basePath", p.basePath)
	}
	return out
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
