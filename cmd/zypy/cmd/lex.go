package cmd

import (
	"fmt"
	"strings"

	"github.com/graeme-hill/zypy-go/lib"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <source>",
	Short: "Print the tokens of a source string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLex(cmd, args[0])
	},
}

var lexFileCmd = &cobra.Command{
	Use:   "lexfile <path>",
	Short: "Print the tokens of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readFile(args[0])
		if err != nil {
			return err
		}
		return runLex(cmd, src)
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(lexFileCmd)
}

func runLex(cmd *cobra.Command, src string) error {
	tokens, err := lib.Tokenize(src)
	if err != nil {
		return err
	}
	logger.Debug("tokenized", "tokens", len(tokens))
	return emit(cmd.OutOrStdout(), lib.DumpTokens(tokens), formatTokens(tokens))
}

func formatTokens(tokens []lib.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", tok.Location, tok.Kind, tok)
	}
	return b.String()
}
