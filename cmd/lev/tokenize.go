package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lev/internal/diagfmt"
	"lev/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.lev",
	Short: "Tokenize a lev source file",
	Long:  `Tokenize breaks down a lev source file into its constituent tokens, including synthesized Newline, Indent and Dedent`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("output", "pretty", "token output format (pretty|json|compact)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	res, err := driver.CompileFile(cmd.Context(), args[0], driver.Options{
		Phase:          driver.PhaseLex,
		MaxDiagnostics: settings.MaxDiagnostics,
		BaseDir:        projectRoot(),
	})
	if err != nil {
		reportError(cmd, err, nil)
		return exitCode(1)
	}
	if res.Failed() {
		reportBag(cmd, res.Bag, res.FileSet)
		return exitCode(1)
	}

	w := cmd.OutOrStdout()
	switch output {
	case "pretty":
		return diagfmt.FormatTokensPretty(w, res.Tokens, res.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(w, res.Tokens, res.FileSet)
	case "compact":
		_, err := fmt.Fprintln(w, diagfmt.FormatTokensCompact(res.Tokens))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
