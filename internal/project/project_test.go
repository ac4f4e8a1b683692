package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	be.Err(t, os.MkdirAll(filepath.Dir(path), 0o755), nil)
	be.Err(t, os.WriteFile(path, []byte(content), 0o600), nil)
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[build]
main = "src/main.lev"

[check]
jobs = 3
cache = false
dir = "examples"

[trace]
level = "phase"
output = "trace.log"
`)
	nested := filepath.Join(root, "src", "deep")
	be.Err(t, os.MkdirAll(nested, 0o755), nil)

	m, ok, err := LoadManifest(nested)
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, m.Config.Package.Name, "demo")
	be.Equal(t, m.MainPath(), filepath.Join(m.Root, "src", "main.lev"))
	be.Equal(t, m.CheckDir(), filepath.Join(m.Root, "examples"))

	s := Defaults()
	s.ApplyConfig(m)
	be.Equal(t, s.Jobs, 3)
	be.True(t, s.NoCache)
	be.Equal(t, s.TraceLevel, "phase")
	be.Equal(t, s.TraceOutput, filepath.Join(m.Root, "trace.log"))
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	be.Err(t, err, nil)
	be.True(t, !ok)
	be.True(t, m == nil)
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no name", "[build]\nmain = \"a.lev\"\n", "missing [package].name"},
		{"unknown key", "[package]\nname = \"x\"\nversion = 2\n", "unknown keys: package.version"},
		{"bad toml", "[package\n", "failed to parse TOML"},
		{"negative jobs", "[package]\nname = \"x\"\n[check]\njobs = -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := DecodeConfig(path)
			be.Err(t, err, tt.want)
			var merr *ManifestError
			be.True(t, errors.As(err, &merr))
			be.Equal(t, merr.Path, path)
		})
	}
}

func TestEnvOverridesManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), DefaultManifest("demo")+"\n[diagnostics]\nmax = 5\ncolor = \"on\"\n")
	t.Setenv("LEV_MAX_DIAGNOSTICS", "7")
	t.Setenv("LEV_TRACE", "debug")
	t.Setenv("LEV_NO_CACHE", "true")
	t.Setenv("LEV_JOBS", "0")
	t.Setenv("NO_COLOR", "1")

	s, m, err := Resolve(root)
	be.Err(t, err, nil)
	be.Equal(t, m.Config.Build.Main, "main.lev")
	be.Equal(t, s.MaxDiagnostics, 7)
	be.Equal(t, s.TraceLevel, "debug")
	be.True(t, s.NoCache)
	be.Equal(t, s.Jobs, 1)
	be.Equal(t, s.Color, "off")
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var content Digest
	content[0] = 1
	a := Combine(content, []byte("ab"), []byte("c"))
	b := Combine(content, []byte("a"), []byte("bc"))
	be.True(t, a != b)
	be.Equal(t, a, Combine(content, []byte("ab"), []byte("c")))
}
