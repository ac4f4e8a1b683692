package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lev/internal/version"
)

var rootCmd = &cobra.Command{
	Use:               "lev",
	Short:             "lev language compiler and toolchain",
	Long:              `lev compiles indentation-delimited lev sources to a typed basic-block IR, runs it, or emits LLVM IR`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
}

// exitCode завершает процесс с кодом; сообщения уже напечатаны.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("format", "pretty", "diagnostics format (pretty|short|json)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("path-mode", "auto", "file paths in diagnostics (auto|absolute|relative|basename)")
	pf.Bool("timings", false, "show timing information")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.String("trace", "", "trace output file (- for stderr, .ndjson for NDJSON)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write a pprof CPU profile to file")
	pf.String("mem-profile", "", "write a pprof heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeTracing(rootCmd, err != nil)
	stopProfiling(rootCmd)

	var code exitCode
	switch {
	case err == nil:
	case errors.As(err, &code):
		os.Exit(int(code))
	default:
		fmt.Fprintf(os.Stderr, "lev: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
