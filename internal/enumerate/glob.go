package enumerate

import (
	"path"
	"strings"
)

// globMagicChars are the characters that make a path segment a glob.
const globMagicChars = "*?[{"

// hasGlobMagic reports whether a pattern segment needs glob matching.
func hasGlobMagic(segment string) bool {
	return strings.ContainsAny(segment, globMagicChars)
}

// globParent splits a slash-separated glob pattern into its literal
// directory prefix and the glob remainder. The parent is "." when the
// very first segment is magic.
//
//	"src/**/*.ts"  → ("src", "**/*.ts")
//	"src/lib/*.js" → ("src/lib", "*.js")
//	"*.ts"         → (".", "*.ts")
func globParent(pattern string) (parent, remainder string) {
	segments := strings.Split(path.Clean(pattern), "/")

	var literal []string
	for i, segment := range segments {
		if hasGlobMagic(segment) {
			remainder = strings.Join(segments[i:], "/")
			break
		}
		literal = append(literal, segment)
	}

	if len(literal) == 0 {
		return ".", remainder
	}
	if remainder == "" {
		// No magic at all; the whole pattern is literal.
		return strings.Join(literal, "/"), ""
	}
	return strings.Join(literal, "/"), remainder
}

// globIsRecursive reports whether the glob remainder may span more than
// one directory level, which requires descending into subdirectories.
func globIsRecursive(remainder string) bool {
	return strings.Contains(remainder, "**") || strings.Contains(remainder, "/")
}
