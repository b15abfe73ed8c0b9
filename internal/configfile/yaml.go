package configfile

import (
	"gopkg.in/yaml.v3"
)

// parseYAML parses a YAML config. A null or empty document yields an
// empty config rather than nil so the caller treats the file as present.
func (l *Loader) parseYAML(path string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}

	if config == nil {
		config = map[string]any{}
	}

	return config, nil
}
