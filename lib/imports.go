package lib

import (
	"fmt"
	"sort"
	"strings"
)

// ImportGraph maps each source file's module name to what it imports.
type ImportGraph struct {
	Files map[string][]Dependency
}

// Dependency is one imported module, or one name imported from a module.
// Module is always absolute; relative imports are resolved against the
// importing file's package.
type Dependency struct {
	Module string
	Name   string
	Alias  string
	Level  int
}

type ImportGraphBuilder struct {
	graph ImportGraph
	known map[string]bool
}

func NewImportGraphBuilder() *ImportGraphBuilder {
	return &ImportGraphBuilder{
		graph: ImportGraph{
			Files: map[string][]Dependency{},
		},
		known: map[string]bool{},
	}
}

// declare marks module as one of the files being graphed, so that
// "from pkg import name" is recorded against pkg.name when it exists.
func (b *ImportGraphBuilder) declare(module string) {
	b.known[module] = true
}

func (b *ImportGraphBuilder) addFile(file SourceFile) error {
	if _, exists := b.graph.Files[file.Name]; exists {
		return fmt.Errorf("Module '%s' is defined by more than one file", file.Name)
	}
	b.graph.Files[file.Name] = []Dependency{}

	for _, stmt := range file.Program.Statements {
		if err := b.handleStmt(file, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (b *ImportGraphBuilder) handleStmt(file SourceFile, stmt Statement) error {
	switch s := stmt.(type) {
	case ImportGroup:
		return b.handleImportGroup(file, s)
	default:
		for _, body := range nestedBlocks(stmt) {
			for _, inner := range body {
				if err := b.handleStmt(file, inner); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func (b *ImportGraphBuilder) handleImportGroup(file SourceFile, g ImportGroup) error {
	for _, imp := range g.Imports {
		module, err := ResolveModule(file.Package, imp)
		if err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}

		if imp.Names == nil {
			b.add(file.Name, Dependency{Module: module, Alias: imp.Alias, Level: imp.Level})
			continue
		}
		for _, name := range imp.Names {
			target := module
			if sub := module + "." + name.Name; b.known[sub] {
				target = sub
			}
			b.add(file.Name, Dependency{Module: target, Name: name.Name, Alias: name.Alias, Level: imp.Level})
		}
	}
	return nil
}

func (b *ImportGraphBuilder) add(file string, dep Dependency) {
	b.graph.Files[file] = append(b.graph.Files[file], dep)
}

// nestedBlocks returns every statement list held by a compound statement.
func nestedBlocks(stmt Statement) [][]Statement {
	switch s := stmt.(type) {
	case WhileStatement:
		return [][]Statement{s.Body, s.Else}
	case ForStatement:
		return [][]Statement{s.Body, s.Else}
	case IfStatement:
		blocks := [][]Statement{}
		for _, branch := range s.Branches {
			blocks = append(blocks, branch.Body)
		}
		return append(blocks, s.Else)
	case DefStatement:
		return [][]Statement{s.Body}
	case WithStatement:
		return [][]Statement{s.Body}
	case ClassStatement:
		return [][]Statement{s.Body}
	case TryStatement:
		blocks := [][]Statement{s.Body}
		for _, h := range s.Handlers {
			blocks = append(blocks, h.Body)
		}
		return append(blocks, s.Else, s.Finally)
	}
	return nil
}

// ResolveModule returns the absolute module an import refers to. A
// relative import at level n in package "a.b.c" drops n trailing
// components of the package before appending its own module path.
func ResolveModule(pkg string, imp ImportStatement) (string, error) {
	if imp.Level == AbsoluteImport {
		return imp.Module, nil
	}

	parts := []string{}
	if pkg != "" {
		parts = strings.Split(pkg, ".")
	}
	if imp.Level >= len(parts) {
		if pkg == "" {
			return "", fmt.Errorf("Relative import of '%s' outside of a package", imp.Module)
		}
		return "", fmt.Errorf("Relative import of '%s' goes beyond top level package '%s'", imp.Module, parts[0])
	}

	base := parts[:len(parts)-imp.Level]
	if imp.Module != "" {
		base = append(base, imp.Module)
	}
	return strings.Join(base, "."), nil
}

// ImportGraphFromSources collects the imports of every file, including
// imports nested inside blocks. A name imported from a package is recorded
// against the submodule of that name when one of the files defines it.
func ImportGraphFromSources(files []SourceFile) (ImportGraph, error) {
	builder := NewImportGraphBuilder()
	for _, file := range files {
		builder.declare(file.Name)
	}
	for _, file := range files {
		if err := builder.addFile(file); err != nil {
			return ImportGraph{}, err
		}
	}
	return builder.graph, nil
}

// FileNames returns the module names of every file in the graph, sorted.
func (g ImportGraph) FileNames() []string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modules returns the distinct modules a file depends on, sorted.
func (g ImportGraph) Modules(file string) []string {
	seen := map[string]bool{}
	modules := []string{}
	for _, dep := range g.Files[file] {
		if !seen[dep.Module] {
			seen[dep.Module] = true
			modules = append(modules, dep.Module)
		}
	}
	sort.Strings(modules)
	return modules
}

// Importers returns the files that depend on module, sorted.
func (g ImportGraph) Importers(module string) []string {
	importers := []string{}
	for _, file := range g.FileNames() {
		for _, dep := range g.Files[file] {
			if dep.Module == module {
				importers = append(importers, file)
				break
			}
		}
	}
	return importers
}
