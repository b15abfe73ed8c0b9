package configarray

import (
	"path/filepath"
	"testing"
)

func TestNewOverrideTester_Empty(t *testing.T) {
	if tester := NewOverrideTester(nil, nil, "/base"); tester != nil {
		t.Errorf("expected nil tester for empty globs, got %v", tester)
	}
}

func TestOverrideTester_Test(t *testing.T) {
	base := filepath.FromSlash("/proj")

	tests := []struct {
		name     string
		files    []string
		excluded []string
		path     string
		want     bool
	}{
		{"include matches", []string{"*.ts"}, nil, "/proj/src/a.ts", true},
		{"include rejects", []string{"*.ts"}, nil, "/proj/src/a.js", false},
		{"basename match at any depth", []string{"*.spec.js"}, nil, "/proj/deep/nested/x.spec.js", true},
		{"path pattern anchors at base", []string{"src/**/*.ts"}, nil, "/proj/src/a/b.ts", true},
		{"path pattern misses sibling dir", []string{"src/**/*.ts"}, nil, "/proj/lib/a.ts", false},
		{"dot-files match", []string{"*.js"}, nil, "/proj/.hidden.js", true},
		{"case-sensitive", []string{"*.TS"}, nil, "/proj/a.ts", false},
		{"exclude only rejects match", nil, []string{"*.gen.ts"}, "/proj/a.gen.ts", false},
		{"exclude only passes others", nil, []string{"*.gen.ts"}, "/proj/a.ts", true},
		{"include and exclude", []string{"*.ts"}, []string{"*.gen.ts"}, "/proj/a.gen.ts", false},
		{"include and exclude passes", []string{"*.ts"}, []string{"*.gen.ts"}, "/proj/a.ts", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester := NewOverrideTester(tt.files, tt.excluded, base)
			if tester == nil {
				t.Fatal("expected non-nil tester")
			}
			got := tester.Test(filepath.FromSlash(tt.path))
			if got != tt.want {
				t.Errorf("Test(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAndTester(t *testing.T) {
	base := filepath.FromSlash("/proj")
	parent := NewOverrideTester([]string{"src/**"}, nil, base)
	child := NewOverrideTester([]string{"*.ts"}, nil, base)

	both := AndTester(parent, child)
	if both == nil {
		t.Fatal("expected non-nil conjunction")
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/proj/src/a.ts", true},
		{"/proj/src/a.js", false},
		{"/proj/lib/a.ts", false},
	}
	for _, tt := range tests {
		if got := both.Test(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("Test(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	if got := AndTester(nil, child); got != child {
		t.Error("AndTester(nil, x) should return x")
	}
	if got := AndTester(parent, nil); got != parent {
		t.Error("AndTester(x, nil) should return x")
	}
}

func TestOverrideTester_String(t *testing.T) {
	tester := NewOverrideTester([]string{"*.ts"}, []string{"*.d.ts"}, "/base")
	first := tester.String()
	second := tester.String()
	if first != second {
		t.Errorf("descriptor is not stable: %q vs %q", first, second)
	}
	if first == "" || first == "[]" {
		t.Errorf("descriptor should describe the patterns, got %q", first)
	}

	var nilTester *OverrideTester
	if nilTester.String() != "null" {
		t.Errorf("nil tester descriptor = %q, want null", nilTester.String())
	}
}
