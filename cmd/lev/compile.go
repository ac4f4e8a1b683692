package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"lev/internal/buildpipeline"
	"lev/internal/diagfmt"
	"lev/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.lev]",
	Short: "Compile a lev source file",
	Long: `Compile runs the pipeline up to --phase (lex, parse or lower).
With --emit the lowered module is written as lev IR or LLVM IR.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("phase", "lower", "last phase to run (lex|parse|lower)")
	compileCmd.Flags().Bool("dump-tokens", false, "print the token stream after lexing")
	compileCmd.Flags().String("emit", "", "emit the lowered module (ir|llvm)")
	compileCmd.Flags().StringP("output", "o", "-", "output file for --emit (- for stdout)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	phaseStr, _ := flags.GetString("phase")
	dumpTokens, _ := flags.GetBool("dump-tokens")
	emitStr, _ := flags.GetString("emit")
	outPath, _ := flags.GetString("output")

	path, err := targetFile(args)
	if err != nil {
		return err
	}
	phase, err := driver.ParsePhase(phaseStr)
	if err != nil {
		return err
	}
	backend, ok := buildpipeline.ParseBackend(emitStr)
	if !ok || backend == buildpipeline.BackendVM {
		return fmt.Errorf("invalid emit format %q (expected: ir|llvm)", emitStr)
	}
	if backend != buildpipeline.BackendNone && phase != driver.PhaseLower {
		return fmt.Errorf("--emit needs --phase=lower")
	}

	req := &buildpipeline.BuildRequest{
		Path:           path,
		Phase:          phase,
		Backend:        backend,
		MaxDiagnostics: settings.MaxDiagnostics,
		EnableTimings:  timingsEnabled(cmd),
		BaseDir:        projectRoot(),
	}
	var closeOut func() error
	if backend != buildpipeline.BackendNone {
		if req.Output, closeOut, err = openOutput(cmd, outPath); err != nil {
			return err
		}
	}

	res, err := buildpipeline.Build(cmd.Context(), req)
	if closeOut != nil {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if dumpTokens && res.Compile != nil && res.Compile.Tokens != nil {
		if derr := diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Compile.Tokens, res.Compile.FileSet); derr != nil {
			return derr
		}
	}
	if timingsEnabled(cmd) && settings.Format != "json" {
		printStageTimings(cmd.ErrOrStderr(), res.Timings, false)
	}
	return finishBuild(cmd, res, err)
}

// finishBuild печатает диагностики и переводит ошибку сборки в код выхода.
func finishBuild(cmd *cobra.Command, res buildpipeline.BuildResult, err error) error {
	if res.Compile != nil {
		// в JSON тайминги едут отдельной info-диагностикой
		if settings.Format == "json" && res.Compile.Timings != nil {
			driver.AppendTimingDiagnostic(res.Compile.Bag, "", res.Compile.File.Path, res.Compile.Timings)
		}
		reportBag(cmd, res.Compile.Bag, res.Compile.FileSet)
	}
	if err == nil {
		return nil
	}
	var pathErr *fs.PathError
	switch {
	case res.Compile != nil && res.Compile.Failed():
		return exitCode(1)
	case errors.As(err, &pathErr):
		reportError(cmd, err, nil)
		return exitCode(1)
	default:
		return err
	}
}
