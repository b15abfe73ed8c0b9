package configfile

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// parseJSON parses a JSON config, tolerating // and /* */ comments.
func (l *Loader) parseJSON(path string, data []byte) (map[string]any, error) {
	stripped := stripJSONComments(data)

	var config map[string]any
	if err := json.Unmarshal(stripped, &config); err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}

	return config, nil
}

// parsePackageJSON parses a package manifest and returns its eslintConfig
// member. A manifest without the member is "no config here", not an empty
// config; it returns (nil, nil).
func (l *Loader) parsePackageJSON(path string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ReadError{Path: path, Cause: fmt.Errorf("invalid JSON")}
	}

	member := gjson.GetBytes(data, "eslintConfig")
	if !member.Exists() {
		return nil, nil
	}

	config, ok := member.Value().(map[string]any)
	if !ok {
		return nil, &ReadError{Path: path, Cause: fmt.Errorf("eslintConfig must be an object")}
	}

	return config, nil
}

// stripJSONComments replaces line and block comments with spaces so byte
// offsets in parse errors still line up with the original text. String
// literals are left untouched.
func stripJSONComments(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)

	const (
		codeState = iota
		stringState
		lineCommentState
		blockCommentState
	)

	state := codeState
	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case codeState:
			switch {
			case c == '"':
				state = stringState
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = lineCommentState
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = blockCommentState
				out[i] = ' '
			}
		case stringState:
			if c == '\\' {
				i++ // skip the escaped byte
			} else if c == '"' {
				state = codeState
			}
		case lineCommentState:
			if c == '\n' || c == '\r' {
				state = codeState
			} else {
				out[i] = ' '
			}
		case blockCommentState:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = codeState
			} else if c != '\n' && c != '\r' {
				out[i] = ' '
			}
		}
	}

	return out
}
