package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/project"
	"lev/internal/types"
	"lev/internal/vm"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		v    vm.Value
		want int
	}{
		{"zero", vm.MakeInt(types.TypeI32, 0), 0},
		{"small", vm.MakeInt(types.TypeI32, 7), 7},
		{"low byte", vm.MakeInt(types.TypeI32, 258), 2},
		{"true", vm.MakeBool(true), 0},
		{"false", vm.MakeBool(false), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exitStatus(tt.v)
			if tt.want == 0 {
				be.Err(t, err, nil)
				return
			}
			var code exitCode
			be.True(t, errors.As(err, &code))
			be.Equal(t, int(code), tt.want)
		})
	}

	err := exitStatus(vm.MakeFloat(types.TypeF64, 1.5))
	be.Err(t, err, "needs an integer result")
}

func TestParseToggle(t *testing.T) {
	for in, want := range map[string]toggle{"": toggleAuto, "AUTO": toggleAuto, "on": toggleOn, " off ": toggleOff} {
		got, err := parseToggle("ui", in)
		be.Err(t, err, nil)
		be.Equal(t, got, want)
	}
	_, err := parseToggle("ui", "maybe")
	be.Err(t, err, "invalid --ui value")

	never := func() bool { return false }
	be.True(t, toggleOn.enabled(never))
	be.True(t, !toggleOff.enabled(func() bool { return true }))
	be.True(t, !toggleAuto.enabled(never))
}

func TestInitWritesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	var out bytes.Buffer
	initCmd.SetOut(&out)
	defer initCmd.SetOut(nil)

	be.Err(t, runInit(initCmd, []string{dir}), nil)
	if !strings.Contains(out.String(), "Initialized lev project") {
		t.Fatalf("unexpected output: %q", out.String())
	}

	cfg, err := project.DecodeConfig(filepath.Join(dir, project.ManifestName))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Package.Name, "demo")
	be.Equal(t, cfg.Build.Main, "main.lev")

	src, err := os.ReadFile(filepath.Join(dir, "main.lev"))
	be.Err(t, err, nil)
	be.True(t, strings.Contains(string(src), "fn main() -> i32:"))

	err = runInit(initCmd, []string{dir})
	be.Err(t, err, "already initialized")
}
