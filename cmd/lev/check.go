package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lev/internal/buildpipeline"
	"lev/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Check every .lev file under a directory",
	Long: `Check lexes, parses and lowers every .lev file under dir in parallel and
reports all diagnostics. Results are cached by content hash between runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("phase", "lower", "last phase to run (lex|parse|lower)")
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0 = from config)")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the check cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop cached results before checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	phaseStr, _ := flags.GetString("phase")
	uiStr, _ := flags.GetString("ui")
	clearCache, _ := flags.GetBool("clear-cache")

	phase, err := driver.ParsePhase(phaseStr)
	if err != nil {
		return err
	}
	ui, err := parseToggle("ui", uiStr)
	if err != nil {
		return err
	}

	dir := "."
	switch {
	case len(args) > 0:
		dir = args[0]
	case manifest != nil:
		dir = manifest.CheckDir()
	}
	if st, err := os.Stat(dir); err != nil {
		reportError(cmd, err, nil)
		return exitCode(1)
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	opts := driver.CheckOptions{
		Phase:          phase,
		Jobs:           settings.Jobs,
		MaxDiagnostics: settings.MaxDiagnostics,
		EnableTimings:  timingsEnabled(cmd),
	}
	if !settings.NoCache {
		cache, err := driver.OpenDiskCache(settings.CacheDir)
		if err != nil {
			// без кеша проверка всё равно работает
			fmt.Fprintf(cmd.ErrOrStderr(), "lev: cache disabled: %v\n", err)
		} else {
			if clearCache {
				if err := cache.Clear(); err != nil {
					return err
				}
			}
			opts.Cache = cache
		}
	}

	req := &buildpipeline.CheckRequest{Dir: dir, Options: opts}
	var report *driver.CheckReport
	if useTUI(ui) {
		report, err = runCheckWithUI(cmd.Context(), "check "+filepath.Base(absOr(dir)), req)
	} else {
		report, err = buildpipeline.Check(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	bag := report.Bag()
	if report.Timings != nil {
		if settings.Format == "json" {
			driver.AppendTimingDiagnostic(bag, "check", "", report.Timings)
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), report.Timings.Summary())
		}
	}
	reportBag(cmd, bag, report.FileSet)

	failed := report.FailedFiles()
	if !quiet(cmd) && settings.Format != "json" {
		cached := 0
		for _, f := range report.Files {
			if f.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files (%d cached), %d failed\n", len(report.Files), cached, failed)
	}
	if failed > 0 {
		return exitCode(1)
	}
	return nil
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
