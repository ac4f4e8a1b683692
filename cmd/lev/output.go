package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lev/internal/diag"
	"lev/internal/diagfmt"
	"lev/internal/driver"
	"lev/internal/source"
)

// reportBag печатает диагностики в stderr в выбранном формате.
func reportBag(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	w := cmd.ErrOrStderr()
	switch settings.Format {
	case "json":
		err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              settings.MaxDiagnostics,
			IncludeNotes:     true,
		})
		if err != nil {
			fmt.Fprintf(w, "lev: %v\n", err)
		}
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, true); out != "" {
			fmt.Fprintln(w, out)
		}
	default:
		diagfmt.Pretty(w, bag, fs, prettyOpts())
	}
}

// reportError выводит ошибку как диагностику, если у неё есть такая форма.
func reportError(cmd *cobra.Command, err error, fs *source.FileSet) {
	d, ok := driver.ErrorDiagnostic(err)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "lev: %v\n", err)
		return
	}
	if fs == nil {
		fs = source.NewFileSet()
	}
	bag := diag.NewBag(1)
	bag.Add(d)
	reportBag(cmd, bag, fs)
}

// openOutput: "" и "-" — stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// targetFile: аргумент или [build].main из lev.toml.
func targetFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := manifest.MainPath(); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no input file (pass file.lev or set [build].main in lev.toml)")
}
