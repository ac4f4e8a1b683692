package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lev/internal/buildpipeline"
	"lev/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.lev]",
	Short: "Compile a lev source file and run main on the IR interpreter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("trace-vm", false, "print every executed instruction to stderr")
	runCmd.Flags().Int("max-depth", 0, "call depth limit (0 = default)")
	runCmd.Flags().Bool("exit-code", false, "use main's integer result as the process exit status")
}

func runRun(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	traceVM, _ := flags.GetBool("trace-vm")
	maxDepth, _ := flags.GetInt("max-depth")
	asExit, _ := flags.GetBool("exit-code")

	path, err := targetFile(args)
	if err != nil {
		return err
	}
	req := &buildpipeline.BuildRequest{
		Path:           path,
		Backend:        buildpipeline.BackendVM,
		MaxDiagnostics: settings.MaxDiagnostics,
		EnableTimings:  timingsEnabled(cmd),
		BaseDir:        projectRoot(),
		MaxDepth:       maxDepth,
	}
	if traceVM {
		req.RunTrace = cmd.ErrOrStderr()
	}

	res, err := buildpipeline.Build(cmd.Context(), req)
	if timingsEnabled(cmd) && settings.Format != "json" {
		printStageTimings(cmd.ErrOrStderr(), res.Timings, true)
	}
	var vmErr *vm.VMError
	if errors.As(err, &vmErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), vmErr.FormatWithFiles(res.Compile.FileSet))
		return exitCode(101)
	}
	if err := finishBuild(cmd, res, err); err != nil {
		return err
	}

	if asExit {
		// как у процесса: младший байт результата
		return exitStatus(res.Value)
	}
	if !quiet(cmd) {
		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
	}
	return nil
}

func exitStatus(v vm.Value) error {
	if v.Type.IsBool() {
		// true — успех, как в shell
		if v.Bool() {
			return nil
		}
		return exitCode(1)
	}
	if v.Type.IsFloat() {
		return fmt.Errorf("--exit-code needs an integer result, main returned %s", v.Type)
	}
	if code := int(v.Uint() & 0xff); code != 0 {
		return exitCode(code)
	}
	return nil
}
