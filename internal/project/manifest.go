package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file looked up by every lev command.
const ManifestName = "lev.toml"

// Manifest is a decoded lev.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package     PackageConfig     `toml:"package"`
	Build       BuildConfig       `toml:"build"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Check       CheckConfig       `toml:"check"`
	Trace       TraceConfig       `toml:"trace"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Main string `toml:"main"` // относительно Root
}

type DiagnosticsConfig struct {
	Max    int    `toml:"max"`
	Format string `toml:"format"` // pretty|short|json
	Color  string `toml:"color"`  // auto|on|off
}

type CheckConfig struct {
	Jobs  int    `toml:"jobs"`
	Cache *bool  `toml:"cache"` // nil — по умолчанию включён
	Dir   string `toml:"dir"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// ManifestError reports an unreadable or invalid lev.toml.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// FindManifest walks up from startDir to locate lev.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes lev.toml. ok is false when there is none.
func LoadManifest(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := DecodeConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// DecodeConfig reads one lev.toml. [package].name is required,
// unknown keys are rejected so typos do not silently fall back to defaults.
func DecodeConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &ManifestError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &ManifestError{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, &ManifestError{Path: path, Err: errors.New("missing [package].name")}
	}
	if cfg.Diagnostics.Max < 0 || cfg.Check.Jobs < 0 {
		return Config{}, &ManifestError{Path: path, Err: errors.New("[diagnostics].max and [check].jobs must not be negative")}
	}
	return cfg, nil
}

// MainPath resolves [build].main; empty when not set.
func (m *Manifest) MainPath() string {
	if m == nil || strings.TrimSpace(m.Config.Build.Main) == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Main))
}

// CheckDir resolves [check].dir, defaulting to the project root.
func (m *Manifest) CheckDir() string {
	if m == nil {
		return ""
	}
	if strings.TrimSpace(m.Config.Check.Dir) == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Check.Dir))
}

// DefaultManifest is what `lev init`-style tooling and tests write.
func DefaultManifest(name string) string {
	return fmt.Sprintf("[package]\nname = %q\n\n[build]\nmain = \"main.lev\"\n", name)
}
