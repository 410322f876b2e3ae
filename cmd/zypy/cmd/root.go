package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/graeme-hill/zypy-go/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	format  string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zypy",
	Short: "Tokenizer and parser for zypy source",
	Long: `zypy tokenizes and parses source written in an indentation
structured, Python 2 like language.

It can print token streams and syntax trees, reformat files, and
collect the import graph of a source tree into a report or a
Postgres index.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = format
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Level, verbose)
		logger.Debug("loaded config", "path", cfgFile, "format", cfg.Output.Format)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// emit writes value as JSON or YAML, or text when the text format is
// selected.
func emit(w io.Writer, value interface{}, text string) error {
	switch cfg.Output.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(value)
	}
	_, err := io.WriteString(w, text)
	return err
}

func readFile(path string) (string, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(bytes), nil
}
