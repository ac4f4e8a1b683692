package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lev/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new lev project",
	Long: `Initialize a new lev project by creating a project manifest (lev.toml)
and an entry point (main.lev). If [path|name] is omitted, initializes the
current directory. A non-existing name creates the directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const defaultMain = `// lev project entry point
fn answer() -> i32:
    return 42

fn main() -> i32:
    let x = answer()
    return x
`

func runInit(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(cmp.Or(firstArg(args), "."))
	if err != nil {
		return err
	}
	if err := ensureDir(target); err != nil {
		return err
	}
	name := filepath.Base(target)
	if name == "." || name == string(filepath.Separator) {
		name = "lev-project"
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	created, err := writeNew(manifestPath, project.DefaultManifest(name))
	switch {
	case err != nil:
		return fmt.Errorf("failed to write manifest: %w", err)
	case !created:
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	createdMain, err := writeNew(filepath.Join(target, "main.lev"), defaultMain)
	if err != nil {
		return fmt.Errorf("failed to write main.lev: %w", err)
	}

	shown := target
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, target); err == nil {
			shown = rel
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized lev project in %s\n  - %s\n", shown, project.ManifestName)
	if createdMain {
		fmt.Fprintln(out, "  - main.lev")
	} else {
		fmt.Fprintln(out, "  - main.lev (existing)")
	}
	return nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// ensureDir creates dir when missing and rejects a file in its place.
func ensureDir(dir string) error {
	st, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		return nil
	case err != nil:
		return err
	case !st.IsDir():
		return fmt.Errorf("%q is not a directory", dir)
	}
	return nil
}

// writeNew writes data unless path already exists; created is false then.
func writeNew(path, data string) (created bool, err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = f.WriteString(data)
	return true, errors.Join(err, f.Close())
}
