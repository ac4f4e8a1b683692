package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lev/internal/diagfmt"
	"lev/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lev",
	Short: "Parse a lev source file and output its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("output", "pretty", "AST output format (pretty|sexpr|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	res, err := driver.CompileFile(cmd.Context(), args[0], driver.Options{
		Phase:          driver.PhaseParse,
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
		return diagfmt.FormatASTPretty(w, res.Builder, res.Stmts, res.FileSet)
	case "sexpr":
		return diagfmt.FormatASTSexpr(w, res.Builder, res.Stmts)
	case "json":
		return diagfmt.FormatASTJSON(w, res.Builder, res.Stmts)
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
}
