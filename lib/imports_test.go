package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sourceFile(t *testing.T, name string, pkg string, src string) SourceFile {
	return SourceFile{Name: name, Path: name + ".zy", Package: pkg, Source: src, Program: mustParse(t, src)}
}

func TestImportGraphBuilder(t *testing.T) {
	b := NewImportGraphBuilder()

	err := b.addFile(sourceFile(t, "pkg.sub.mod", "pkg.sub", `import os, sys as system
from . import sibling
from ..other import thing as t
def f():
    if x:
        import json
`))
	require.NoError(t, err)

	require.Equal(t, []Dependency{
		{Module: "os", Level: AbsoluteImport},
		{Module: "sys", Alias: "system", Level: AbsoluteImport},
		{Module: "pkg.sub", Name: "sibling", Level: 0},
		{Module: "pkg.other", Name: "thing", Alias: "t", Level: 1},
		{Module: "json", Level: AbsoluteImport},
	}, b.graph.Files["pkg.sub.mod"])

	err = b.addFile(sourceFile(t, "pkg.sub.mod", "pkg.sub", "pass"))
	require.Error(t, err)
}

func TestImportGraphResolvesSubmodules(t *testing.T) {
	files := []SourceFile{
		sourceFile(t, "pkg", "pkg", "from . import sub, value\nfrom pkg import sub as s2"),
		sourceFile(t, "pkg.main", "pkg", "from . import sub as s, missing\nfrom .sub import sub"),
		sourceFile(t, "pkg.sub", "pkg", "pass"),
	}
	graph, err := ImportGraphFromSources(files)
	require.NoError(t, err)

	require.Equal(t, []Dependency{
		{Module: "pkg.sub", Name: "sub", Level: 0},
		{Module: "pkg", Name: "value", Level: 0},
		{Module: "pkg.sub", Name: "sub", Alias: "s2", Level: AbsoluteImport},
	}, graph.Files["pkg"])
	require.Equal(t, []Dependency{
		{Module: "pkg.sub", Name: "sub", Alias: "s", Level: 0},
		{Module: "pkg", Name: "missing", Level: 0},
		{Module: "pkg.sub", Name: "sub", Level: 0},
	}, graph.Files["pkg.main"])
	require.Equal(t, []string{"pkg", "pkg.main"}, graph.Importers("pkg.sub"))
}

func TestImportGraphFindsNestedImports(t *testing.T) {
	src := `class A:
    try:
        import a
    except E:
        import b
    else:
        import c
    finally:
        import d
for x in y:
    pass
else:
    import e
with m:
    while z:
        pass
    else:
        import f
if p:
    pass
elif q:
    import g
else:
    import h
`
	graph, err := ImportGraphFromSources([]SourceFile{sourceFile(t, "m", "", src)})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, graph.Modules("m"))
}

func TestResolveModule(t *testing.T) {
	cases := []struct {
		pkg    string
		module string
		level  int
		want   string
	}{
		{"", "a.b", AbsoluteImport, "a.b"},
		{"x.y", "a", AbsoluteImport, "a"},
		{"x.y", "a", 0, "x.y.a"},
		{"x.y", "", 0, "x.y"},
		{"x.y", "a", 1, "x.a"},
		{"x.y", "", 1, "x"},
	}
	for _, c := range cases {
		got, err := ResolveModule(c.pkg, ImportStatement{Module: c.module, Level: c.level})
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestResolveModuleFailures(t *testing.T) {
	_, err := ResolveModule("", ImportStatement{Module: "a", Level: 0})
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside of a package")

	_, err = ResolveModule("x", ImportStatement{Module: "a", Level: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "beyond top level package")
}

func TestImportGraphFromSourcesReportsPath(t *testing.T) {
	f := sourceFile(t, "top", "", "from . import a")
	_, err := ImportGraphFromSources([]SourceFile{f})
	require.Error(t, err)
	require.Contains(t, err.Error(), "top.zy")
}

func TestImportGraphFromDir(t *testing.T) {
	files, err := ReadSourcesFromDir(basicDir)
	require.NoError(t, err)

	graph, err := ImportGraphFromSources(files)
	require.NoError(t, err)

	require.Equal(t, []string{"app", "app.core", "app.util", "main"}, graph.FileNames())
	require.Equal(t, []Dependency{{Module: "app.core", Name: "run", Level: 0}}, graph.Files["app"])
	require.Equal(t, []string{"app.util", "json", "os", "sys"}, graph.Modules("app.core"))
	require.Equal(t, []string{}, graph.Modules("app.util"))
	require.Equal(t, []Dependency{
		{Module: "app", Level: AbsoluteImport},
		{Module: "app.core", Name: "run", Alias: "start", Level: AbsoluteImport},
	}, graph.Files["main"])

	require.Equal(t, []string{"app", "main"}, graph.Importers("app.core"))
	require.Equal(t, []string{"main"}, graph.Importers("app"))
	require.Equal(t, []string{"app.core"}, graph.Importers("app.util"))
	require.Equal(t, []string{}, graph.Importers("nothing"))
}
