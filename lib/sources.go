package lib

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions are the file extensions ReadSourcesFromDir picks up.
var SourceExtensions = []string{".zy", ".py"}

// SourceFile is one parsed source file. Name is its dotted module name
// relative to the directory it was read from and Package the package its
// relative imports resolve against.
type SourceFile struct {
	Name    string
	Path    string
	Package string
	Source  string
	Program Program
}

// ReadSourcesFromDir parses every source file below dir, in path order.
func ReadSourcesFromDir(dir string) ([]SourceFile, error) {
	paths := []string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isSourceFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	files := []SourceFile{}
	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, err
		}
		f, err := readSource(path, rel)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// ReadSourceFile parses a single file. Its module name is its base name and
// it belongs to no package.
func ReadSourceFile(path string) (SourceFile, error) {
	return readSource(path, filepath.Base(path))
}

func readSource(path string, rel string) (SourceFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, err
	}

	name, pkg := moduleNameFromPath(rel)
	f := SourceFile{
		Name:    name,
		Path:    path,
		Package: pkg,
		Source:  string(bytes),
	}

	f.Program, err = Parse(f.Source)
	if err != nil {
		return SourceFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// moduleNameFromPath turns "a/b/c.zy" into module "a.b.c" in package
// "a.b". A package's __init__ file is named after the package itself.
func moduleNameFromPath(rel string) (string, string) {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	parts := strings.Split(rel, "/")

	last := parts[len(parts)-1]
	dirs := parts[:len(parts)-1]
	pkg := strings.Join(dirs, ".")
	if last == "__init__" {
		return pkg, pkg
	}
	if pkg == "" {
		return last, ""
	}
	return pkg + "." + last, pkg
}
