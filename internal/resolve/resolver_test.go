package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/configfile"
)

func newTestResolver(t *testing.T, opts ...Option) *Resolver {
	t.Helper()
	return New(configfile.NewLoader(), opts...)
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveExtends_BuiltIn(t *testing.T) {
	r := newTestResolver(t)

	extend, err := r.ResolveExtends("eslint:recommended", "/proj/.eslintrc.json", "proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extend.ConfigData == nil {
		t.Fatal("built-in extends should carry config data")
	}

	_, err = r.ResolveExtends("eslint:bogus", "/proj/.eslintrc.json", "proj")
	var missing *ExtendMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *ExtendMissingError for unknown eslint: name, got %v", err)
	}
	if missing.Name != "eslint:bogus" {
		t.Errorf("error name = %q", missing.Name)
	}
}

func TestResolveExtends_PluginConfig(t *testing.T) {
	def := &configarray.PluginDefinition{
		Configs: map[string]any{
			"strict": map[string]any{"rules": map[string]any{"r1": "error"}},
		},
	}
	r := newTestResolver(t, WithPluginPool(map[string]*configarray.PluginDefinition{
		"eslint-plugin-alpha": def,
	}))

	extend, err := r.ResolveExtends("plugin:alpha/strict", "/proj/.eslintrc.json", "proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"rules": map[string]any{"r1": "error"}}
	if !reflect.DeepEqual(extend.ConfigData, want) {
		t.Errorf("config data = %#v, want %#v", extend.ConfigData, want)
	}

	// Missing config inside a present plugin is eager.
	_, err = r.ResolveExtends("plugin:alpha/nope", "/proj/.eslintrc.json", "proj")
	var missing *ExtendMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *ExtendMissingError, got %v", err)
	}

	// Missing plugin is eager for extends.
	_, err = r.ResolveExtends("plugin:ghost/any", "/proj/.eslintrc.json", "proj")
	var pluginMissing *PluginMissingError
	if !errors.As(err, &pluginMissing) {
		t.Fatalf("expected *PluginMissingError, got %v", err)
	}
}

func TestResolveExtends_Paths(t *testing.T) {
	r := newTestResolver(t)
	importer := filepath.FromSlash("/proj/.eslintrc.json")

	abs := filepath.FromSlash("/etc/shared-config.json")
	extend, err := r.ResolveExtends(abs, importer, "proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extend.FilePath != abs {
		t.Errorf("absolute extends path = %q, want %q", extend.FilePath, abs)
	}

	extend, err = r.ResolveExtends("./base.yaml", importer, "proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.FromSlash("/proj/base.yaml"); extend.FilePath != want {
		t.Errorf("relative extends path = %q, want %q", extend.FilePath, want)
	}
}

func TestResolveExtends_Package(t *testing.T) {
	dir := t.TempDir()
	importer := filepath.Join(dir, ".eslintrc.json")
	configPath := filepath.Join(dir, "node_modules", "eslint-config-shared", "index.json")
	writeFile(t, configPath, `{"rules": {"r1": "warn"}}`)

	r := newTestResolver(t)
	extend, err := r.ResolveExtends("shared", importer, "proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extend.FilePath != configPath {
		t.Errorf("resolved path = %q, want %q", extend.FilePath, configPath)
	}

	_, err = r.ResolveExtends("not-installed", importer, "proj")
	var missing *ExtendMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *ExtendMissingError, got %v", err)
	}
}

func TestResolveExtends_Whitespace(t *testing.T) {
	r := newTestResolver(t)
	if _, err := r.ResolveExtends("bad name", "/proj/.eslintrc.json", "proj"); err == nil {
		t.Fatal("expected error for whitespace in name")
	}
}

func TestLoadPlugin_Pool(t *testing.T) {
	def := &configarray.PluginDefinition{}
	tests := []struct {
		name    string
		poolKey string
		request string
		wantID  string
	}{
		{"long name key", "eslint-plugin-alpha", "alpha", "alpha"},
		{"shorthand key", "beta", "beta", "beta"},
		{"scoped", "@scope/eslint-plugin-gamma", "@scope/gamma", "@scope/gamma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestResolver(t, WithPluginPool(map[string]*configarray.PluginDefinition{
				tt.poolKey: def,
			}))
			ref := r.LoadPlugin(tt.request, "/proj/.eslintrc.json", "proj")
			if ref.Error != nil {
				t.Fatalf("unexpected stored error: %v", ref.Error)
			}
			if ref.Definition != def {
				t.Error("expected pool definition")
			}
			if ref.ID != tt.wantID {
				t.Errorf("id = %q, want %q", ref.ID, tt.wantID)
			}
		})
	}
}

func TestLoadPlugin_FromDisk(t *testing.T) {
	dir := t.TempDir()
	importer := filepath.Join(dir, ".eslintrc.json")
	writeFile(t, filepath.Join(dir, "node_modules", "eslint-plugin-md", "index.js"), `
return {
	processors = {
		[".md"] = { name = "md" },
	},
	configs = {
		recommended = { rules = { r1 = "error" } },
	},
}
`)

	r := newTestResolver(t)
	ref := r.LoadPlugin("md", importer, "proj")
	if ref.Error != nil {
		t.Fatalf("unexpected stored error: %v", ref.Error)
	}
	if ref.Definition == nil || ref.Definition.Processors[".md"] == nil {
		t.Fatalf("definition not loaded: %+v", ref.Definition)
	}
	if ref.ID != "md" {
		t.Errorf("id = %q, want md", ref.ID)
	}
}

func TestLoadPlugin_MissingIsStoredLazily(t *testing.T) {
	dir := t.TempDir()
	r := newTestResolver(t)

	ref := r.LoadPlugin("ghost", filepath.Join(dir, ".eslintrc.json"), "proj")
	if ref.Error == nil {
		t.Fatal("expected stored error for missing plugin")
	}
	var missing *PluginMissingError
	if !errors.As(ref.Error, &missing) {
		t.Fatalf("expected *PluginMissingError, got %T", ref.Error)
	}
	if missing.LongName != "eslint-plugin-ghost" {
		t.Errorf("long name = %q", missing.LongName)
	}
}

func TestLoadParser(t *testing.T) {
	dir := t.TempDir()
	importer := filepath.Join(dir, ".eslintrc.json")
	writeFile(t, filepath.Join(dir, "parser.js"), `return { name = "custom-parser" }`)

	r := newTestResolver(t)

	ref := r.LoadParser("./parser.js", importer, "proj")
	if ref.Error != nil {
		t.Fatalf("unexpected stored error: %v", ref.Error)
	}
	if ref.Definition == nil {
		t.Fatal("parser definition not loaded")
	}

	ghost := r.LoadParser("ghost-parser", importer, "proj")
	var missing *ParserMissingError
	if !errors.As(ghost.Error, &missing) {
		t.Fatalf("expected stored *ParserMissingError, got %v", ghost.Error)
	}
}

func TestFileResolver_PackageMain(t *testing.T) {
	dir := t.TempDir()
	pkg := filepath.Join(dir, "node_modules", "eslint-config-main")
	writeFile(t, filepath.Join(pkg, "package.json"), `{"main": "lib/entry.json"}`)
	writeFile(t, filepath.Join(pkg, "lib", "entry.json"), `{}`)

	r := NewFileResolver(nil)
	got, err := r.Resolve("eslint-config-main", filepath.Join(dir, ".eslintrc.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(pkg, "lib", "entry.json"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}

func TestFileResolver_WalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "node_modules", "eslint-plugin-up", "index.js"), `return {}`)
	nested := filepath.Join(dir, "a", "b", "c")
	mkdirAll(t, nested)

	r := NewFileResolver(nil)
	got, err := r.Resolve("eslint-plugin-up", filepath.Join(nested, ".eslintrc.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "node_modules", "eslint-plugin-up", "index.js"); got != want {
		t.Errorf("resolved %q, want %q", got, want)
	}
}
