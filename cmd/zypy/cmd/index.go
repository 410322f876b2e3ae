package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/graeme-hill/zypy-go/lib"
	"github.com/spf13/cobra"
)

var indexDSN string

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Record the import graph of a source tree in Postgres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := indexDatabase()
		if err != nil {
			return err
		}

		graph, err := readGraph(args[0])
		if err != nil {
			return err
		}

		ix, err := lib.OpenImportIndex(dsn, cfg.Index.Table)
		if err != nil {
			return err
		}
		defer ix.Close()

		ctx := cmd.Context()
		if err := ix.RequireTable(ctx); err != nil {
			return err
		}
		runID, err := ix.Record(ctx, graph)
		if err != nil {
			return err
		}

		logger.Info("recorded imports", "run", runID, "files", len(graph.Files), "table", cfg.Index.Table)
		_, err = fmt.Fprintln(cmd.OutOrStdout(), runID)
		return err
	},
}

var importersCmd = &cobra.Command{
	Use:   "importers <run-id> <module>",
	Short: "List the files that imported a module in a recorded run",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		dsn, err := indexDatabase()
		if err != nil {
			return err
		}

		ix, err := lib.OpenImportIndex(dsn, cfg.Index.Table)
		if err != nil {
			return err
		}
		defer ix.Close()

		files, err := ix.Importers(cmd.Context(), runID, args[1])
		if err != nil {
			return err
		}
		logger.Debug("queried importers", "run", runID, "module", args[1], "files", len(files))
		return emit(cmd.OutOrStdout(), files, formatLines(files))
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexDSN, "dsn", "", "Postgres connection string, overrides the config file")
	importersCmd.Flags().StringVar(&indexDSN, "dsn", "", "Postgres connection string, overrides the config file")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(importersCmd)
}

// indexDatabase returns the DSN from --dsn, falling back to the config file.
func indexDatabase() (string, error) {
	dsn := cfg.Index.DSN
	if indexDSN != "" {
		dsn = indexDSN
	}
	if dsn == "" {
		return "", errors.New("no database configured, set [index] dsn or pass --dsn")
	}
	return dsn, nil
}

func formatLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
