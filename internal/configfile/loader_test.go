package configfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoader_Load_JSON(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]any
		wantErr  bool
	}{
		{
			name:     "plain object",
			content:  `{"root": true, "rules": {"r1": "error"}}`,
			expected: map[string]any{"root": true, "rules": map[string]any{"r1": "error"}},
		},
		{
			name: "line and block comments",
			content: `{
				// enable root
				"root": true,
				/* rules block */
				"rules": {"r1": "warn"}
			}`,
			expected: map[string]any{"root": true, "rules": map[string]any{"r1": "warn"}},
		},
		{
			name:     "comment markers inside strings survive",
			content:  `{"settings": {"url": "http://example.com/*x*/"}}`,
			expected: map[string]any{"settings": map[string]any{"url": "http://example.com/*x*/"}},
		},
		{
			name:    "malformed",
			content: `{"root": tru`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, ".eslintrc.json", tt.content)

			got, err := NewLoader().Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var readErr *ReadError
				if !errors.As(err, &readErr) {
					t.Fatalf("expected *ReadError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestLoader_Load_YAML(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected map[string]any
	}{
		{
			name:     "yaml mapping",
			file:     ".eslintrc.yaml",
			content:  "root: true\nrules:\n  r1: error\n",
			expected: map[string]any{"root": true, "rules": map[string]any{"r1": "error"}},
		},
		{
			name:     "yml extension",
			file:     ".eslintrc.yml",
			content:  "env:\n  browser: true\n",
			expected: map[string]any{"env": map[string]any{"browser": true}},
		},
		{
			name:     "null document is an empty config",
			file:     ".eslintrc.yaml",
			content:  "",
			expected: map[string]any{},
		},
		{
			name:     "extensionless eslintrc parses as yaml",
			file:     ".eslintrc",
			content:  "rules:\n  r2: warn\n",
			expected: map[string]any{"rules": map[string]any{"r2": "warn"}},
		},
		{
			name:     "extensionless eslintrc accepts json",
			file:     ".eslintrc",
			content:  `{"rules": {"r2": "warn"}}`,
			expected: map[string]any{"rules": map[string]any{"r2": "warn"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)

			got, err := NewLoader().Load(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("got %#v, want %#v", got, tt.expected)
			}
		})
	}
}

func TestLoader_Load_PackageJSON(t *testing.T) {
	t.Run("eslintConfig member", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "package.json",
			`{"name": "x", "eslintConfig": {"rules": {"r1": "error"}}}`)

		got, err := NewLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := map[string]any{"rules": map[string]any{"r1": "error"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v, want %#v", got, want)
		}
	})

	t.Run("missing member means no config", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "package.json", `{"name": "x"}`)

		got, err := NewLoader().Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil config, got %#v", got)
		}
	})

	t.Run("non-object member is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "package.json", `{"eslintConfig": "nope"}`)

		if _, err := NewLoader().Load(path); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestLoader_Load_Script(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".eslintrc.js", `
return {
	root = true,
	rules = {
		r1 = {"error", "opt"},
	},
	plugins = {"alpha", "beta"},
}
`)

	got, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"root": true,
		"rules": map[string]any{
			"r1": []any{"error", "opt"},
		},
		"plugins": []any{"alpha", "beta"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestLoader_Load_ScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", `return {`},
		{"runtime error", `error("boom")`},
		{"non-table return", `return 42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, ".eslintrc.js", tt.content)

			_, err := NewLoader().Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var readErr *ReadError
			if !errors.As(err, &readErr) {
				t.Fatalf("expected *ReadError, got %T", err)
			}
		})
	}
}

func TestLoader_Load_ScriptIsFreshPerLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".eslintrc.js", `
counter = (counter or 0) + 1
return { settings = { n = counter } }
`)

	loader := NewLoader()
	for i := 0; i < 2; i++ {
		got, err := loader.Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := got["settings"].(map[string]any)["n"]
		if n != int64(1) {
			t.Errorf("load %d: global leaked across loads, n = %v", i+1, n)
		}
	}
}

func TestLoader_Load_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader().Load(filepath.Join(dir, ".eslintrc.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
