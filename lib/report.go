package lib

import (
	"io"
	"os"
	"sort"
	"text/template"
)

var reportTemplate = template.Must(template.New("report").Parse(`# Import report

{{range .Files}}## {{.Name}}

Path: {{.Path}}
Statements: {{.Statements}}
{{if .Dependencies}}
| module | name | alias | level |
|--------|------|-------|-------|
{{range .Dependencies}}| {{.Module}} | {{.Name}} | {{.Alias}} | {{.Level}} |
{{end}}{{else}}
No imports.
{{end}}
{{end}}{{if .Importers}}## Imported modules

{{range .Importers}}- {{.Module}}: {{range $i, $f := .Files}}{{if $i}}, {{end}}{{$f}}{{end}}
{{end}}{{end}}`))

type reportViewModel struct {
	Files     []fileViewModel
	Importers []importerViewModel
}

type fileViewModel struct {
	Name         string
	Path         string
	Statements   int
	Dependencies []Dependency
}

type importerViewModel struct {
	Module string
	Files  []string
}

// GenerateReport reads the sources below srcDir and writes a Markdown
// report of their imports to dest.
func GenerateReport(srcDir string, dest string) error {
	files, err := ReadSourcesFromDir(srcDir)
	if err != nil {
		return err
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	return WriteReport(out, files)
}

// WriteReport writes a Markdown report of the imports of files to w.
func WriteReport(w io.Writer, files []SourceFile) error {
	graph, err := ImportGraphFromSources(files)
	if err != nil {
		return err
	}
	return reportTemplate.Execute(w, buildReportViewModel(files, graph))
}

func buildReportViewModel(files []SourceFile, graph ImportGraph) reportViewModel {
	vm := reportViewModel{}

	modules := map[string]bool{}
	for _, f := range files {
		deps := graph.Files[f.Name]
		vm.Files = append(vm.Files, fileViewModel{
			Name:         f.Name,
			Path:         f.Path,
			Statements:   len(f.Program.Statements),
			Dependencies: deps,
		})
		for _, m := range graph.Modules(f.Name) {
			modules[m] = true
		}
	}

	for _, m := range sortedKeys(modules) {
		vm.Importers = append(vm.Importers, importerViewModel{
			Module: m,
			Files:  graph.Importers(m),
		})
	}
	return vm
}

func sortedKeys(set map[string]bool) []string {
	keys := []string{}
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
