package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lev/internal/diagfmt"
	"lev/internal/project"
)

// settings заполняется в prepare: defaults < lev.toml < LEV_* < флаги.
var (
	settings = project.Defaults()
	manifest *project.Manifest
	pathMode = diagfmt.PathModeAuto
)

func prepare(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	s, m, err := project.Resolve(cwd)
	if err != nil {
		reportError(cmd, err, nil)
		return exitCode(1)
	}
	if err := applyFlags(cmd, &s); err != nil {
		return err
	}
	settings, manifest = s, m
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	return setupTracing(cmd)
}

func applyFlags(cmd *cobra.Command, s *project.Settings) error {
	flags := cmd.Flags()
	if flags.Changed("color") {
		s.Color, _ = flags.GetString("color")
	}
	if flags.Changed("format") {
		s.Format, _ = flags.GetString("format")
	}
	if flags.Changed("max-diagnostics") {
		s.MaxDiagnostics, _ = flags.GetInt("max-diagnostics")
	}
	if flags.Changed("trace-level") {
		s.TraceLevel, _ = flags.GetString("trace-level")
	}
	if flags.Changed("trace") {
		s.TraceOutput, _ = flags.GetString("trace")
		// --trace без уровня включает фазы
		if !flags.Changed("trace-level") && s.TraceLevel == "off" {
			s.TraceLevel = "phase"
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		s.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Lookup("no-cache") != nil && flags.Changed("no-cache") {
		s.NoCache, _ = flags.GetBool("no-cache")
	}

	if _, err := parseToggle("color", s.Color); err != nil {
		return err
	}
	if flags.Changed("path-mode") {
		v, _ := flags.GetString("path-mode")
		m, err := diagfmt.ParsePathMode(v)
		if err != nil {
			return err
		}
		pathMode = m
	}
	switch s.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("invalid diagnostics format %q (expected pretty|short|json)", s.Format)
	}
	return nil
}

// projectRoot is the base for relative paths in diagnostics; "" means cwd.
func projectRoot() string {
	if manifest == nil {
		return ""
	}
	return manifest.Root
}

func useColor(f *os.File) bool {
	t, _ := parseToggle("color", settings.Color)
	return t.enabled(func() bool { return isTerminal(f) })
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

func timingsEnabled(cmd *cobra.Command) bool {
	t, _ := cmd.Flags().GetBool("timings")
	return t
}

func prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     useColor(os.Stderr),
		Context:   1,
		PathMode:  pathMode,
		ShowNotes: true,
	}
}
