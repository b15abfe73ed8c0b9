package resolve

import (
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/dshills/lintconf/internal/configfile"
)

// ModuleResolver resolves a module request to the file path that should
// be loaded. The importer path is the config file making the request;
// package lookup is rooted at its directory.
type ModuleResolver interface {
	Resolve(request, importerPath string) (string, error)
}

// indexCandidates are the entry file names tried inside a package
// directory, in order, when its manifest names no main file.
var indexCandidates = []string{"index.js", "index.json", "index.yaml", "index.yml"}

// FileResolver is the default ModuleResolver. Path requests resolve
// against the importer's directory; package requests walk node_modules
// directories upward from the importer, honoring package.json#main.
type FileResolver struct {
	fs configfile.FileSystem
}

// NewFileResolver creates a resolver over the given file system.
func NewFileResolver(fsys configfile.FileSystem) *FileResolver {
	if fsys == nil {
		fsys = configfile.DefaultFS()
	}
	return &FileResolver{fs: fsys}
}

// Resolve implements ModuleResolver.
func (r *FileResolver) Resolve(request, importerPath string) (string, error) {
	importerDir := filepath.Dir(importerPath)

	if !isPackageRequest(request) {
		target := request
		if !filepath.IsAbs(target) {
			target = filepath.Join(importerDir, target)
		}
		if resolved, ok := r.resolveTarget(target); ok {
			return resolved, nil
		}
		return "", &ModuleNotFoundError{Request: request, ImporterPath: importerPath}
	}

	for dir := importerDir; ; {
		candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(request))
		if resolved, ok := r.resolveTarget(candidate); ok {
			return resolved, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &ModuleNotFoundError{Request: request, ImporterPath: importerPath}
}

// resolveTarget accepts a file as-is and resolves a directory through
// its manifest's main member or an index file.
func (r *FileResolver) resolveTarget(target string) (string, bool) {
	info, err := r.fs.Stat(target)
	if err != nil {
		return "", false
	}

	if !info.IsDir() {
		return target, true
	}

	manifest := filepath.Join(target, "package.json")
	if data, err := r.fs.ReadFile(manifest); err == nil {
		if main := gjson.GetBytes(data, "main"); main.Exists() {
			entry := filepath.Join(target, filepath.FromSlash(main.String()))
			if info, err := r.fs.Stat(entry); err == nil && !info.IsDir() {
				return entry, true
			}
		}
	}

	for _, name := range indexCandidates {
		entry := filepath.Join(target, name)
		if info, err := r.fs.Stat(entry); err == nil && !info.IsDir() {
			return entry, true
		}
	}

	return "", false
}
