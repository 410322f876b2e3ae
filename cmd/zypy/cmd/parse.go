package cmd

import (
	"github.com/graeme-hill/zypy-go/lib"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <source>",
	Short: "Print the syntax tree of a source string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args[0])
	},
}

var parseFileCmd = &cobra.Command{
	Use:   "parsefile <path>",
	Short: "Print the syntax tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readFile(args[0])
		if err != nil {
			return err
		}
		return runParse(cmd, src)
	},
}

// The text form of a tree is the normalized source it prints as.
var fmtCmd = &cobra.Command{
	Use:   "fmt <path>",
	Short: "Print a source file in normalized form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := lib.ReadSourceFile(args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write([]byte(lib.Format(f.Program)))
		return err
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(parseFileCmd)
	rootCmd.AddCommand(fmtCmd)
}

func runParse(cmd *cobra.Command, src string) error {
	prog, err := lib.Parse(src)
	if err != nil {
		return err
	}
	logger.Debug("parsed", "statements", len(prog.Statements))
	return emit(cmd.OutOrStdout(), lib.DumpProgram(prog), lib.Format(prog))
}
