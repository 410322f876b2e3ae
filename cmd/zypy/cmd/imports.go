package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/graeme-hill/zypy-go/lib"
	"github.com/spf13/cobra"
)

var importsCmd = &cobra.Command{
	Use:   "imports <dir>",
	Short: "Print the import graph of a source tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		graph, err := readGraph(args[0])
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), graph.Files, formatGraph(graph))
	},
}

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Write a Markdown report of the imports of a source tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportOutput != "" {
			logger.Info("writing report", "dir", args[0], "dest", reportOutput)
			return lib.GenerateReport(args[0], reportOutput)
		}
		files, err := lib.ReadSourcesFromDir(args[0])
		if err != nil {
			return err
		}
		return lib.WriteReport(cmd.OutOrStdout(), files)
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(reportCmd)
}

func readGraph(dir string) (lib.ImportGraph, error) {
	if _, err := os.Stat(dir); err != nil {
		return lib.ImportGraph{}, err
	}
	files, err := lib.ReadSourcesFromDir(dir)
	if err != nil {
		return lib.ImportGraph{}, err
	}
	logger.Debug("read sources", "dir", dir, "files", len(files))
	return lib.ImportGraphFromSources(files)
}

func formatGraph(graph lib.ImportGraph) string {
	var b strings.Builder
	for _, file := range graph.FileNames() {
		fmt.Fprintf(&b, "%s: %s\n", file, strings.Join(graph.Modules(file), ", "))
	}
	return b.String()
}
