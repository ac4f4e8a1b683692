package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lev/internal/prof"
)

var activeProfile *prof.Session

func setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = pf.GetString("cpu-profile")
	opts.Mem, _ = pf.GetString("mem-profile")
	opts.Runtime, _ = pf.GetString("runtime-trace")
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = session
	return nil
}

func stopProfiling(cmd *cobra.Command) {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "lev: %v\n", err)
	}
	activeProfile = nil
}
