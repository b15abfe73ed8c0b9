package resolve

import (
	"regexp"
	"strings"
)

// whitespacePattern detects whitespace anywhere in a specifier.
var whitespacePattern = regexp.MustCompile(`\s`)

// NormalizePackageName expands a shorthand package name with the given
// prefix ("eslint-config" or "eslint-plugin"). Already-expanded names
// pass through; scoped packages keep their scope:
//
//	"foo"            → "eslint-plugin-foo"
//	"eslint-plugin-foo" → "eslint-plugin-foo"
//	"@scope"         → "@scope/eslint-plugin"
//	"@scope/foo"     → "@scope/eslint-plugin-foo"
//	"@scope/eslint-plugin-foo" → "@scope/eslint-plugin-foo"
func NormalizePackageName(name, prefix string) string {
	if strings.HasPrefix(name, "@") {
		scope, rest, found := strings.Cut(name, "/")
		if !found || rest == "" {
			return scope + "/" + prefix
		}
		if rest == prefix || strings.HasPrefix(rest, prefix+"-") {
			return name
		}
		return scope + "/" + prefix + "-" + rest
	}

	if name == prefix || strings.HasPrefix(name, prefix+"-") {
		return name
	}
	return prefix + "-" + name
}

// ShorthandName reduces a full package name back to the shorthand id
// used as the key in plugin mappings; the inverse of
// NormalizePackageName.
func ShorthandName(fullName, prefix string) string {
	if strings.HasPrefix(fullName, "@") {
		scope, rest, found := strings.Cut(fullName, "/")
		if !found {
			return fullName
		}
		switch {
		case rest == prefix:
			return scope
		case strings.HasPrefix(rest, prefix+"-"):
			return scope + "/" + strings.TrimPrefix(rest, prefix+"-")
		default:
			return fullName
		}
	}

	return strings.TrimPrefix(fullName, prefix+"-")
}

// checkName rejects specifiers containing whitespace.
func checkName(name string) error {
	if whitespacePattern.MatchString(name) {
		return &InvalidNameError{Name: name, Reason: "whitespace is not allowed"}
	}
	return nil
}

// isPackageRequest reports whether a specifier names a package rather
// than a file path. A leading word character qualifies unless it is a
// Windows drive prefix; a leading @ always does.
func isPackageRequest(name string) bool {
	if name == "" {
		return false
	}
	if name[0] == '@' {
		return true
	}
	c := name[0]
	isWord := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	if !isWord {
		return false
	}
	return len(name) < 2 || name[1] != ':'
}
