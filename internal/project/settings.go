package project

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/xyproto/env/v2"
)

// Settings are the effective knobs of one lev invocation.
// Precedence: flags > LEV_* environment > lev.toml > defaults;
// the cmd layer applies flags on top of Resolve's result.
type Settings struct {
	TraceLevel     string
	TraceOutput    string
	Color          string // auto|on|off
	Format         string // pretty|short|json
	MaxDiagnostics int
	Jobs           int
	CacheDir       string
	NoCache        bool
}

// Defaults returns settings used when nothing else is configured.
func Defaults() Settings {
	return Settings{
		TraceLevel:     "off",
		TraceOutput:    "-",
		Color:          "auto",
		Format:         "pretty",
		MaxDiagnostics: 100,
		Jobs:           runtime.GOMAXPROCS(0),
		CacheDir:       defaultCacheDir(),
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lev")
	}
	return filepath.Join(os.TempDir(), "lev-cache")
}

// ApplyConfig overlays non-zero lev.toml values.
func (s *Settings) ApplyConfig(m *Manifest) {
	if m == nil {
		return
	}
	cfg := m.Config
	if cfg.Trace.Level != "" {
		s.TraceLevel = cfg.Trace.Level
	}
	if cfg.Trace.Output != "" {
		s.TraceOutput = cfg.Trace.Output
		if s.TraceOutput != "-" && !filepath.IsAbs(s.TraceOutput) {
			s.TraceOutput = filepath.Join(m.Root, s.TraceOutput)
		}
	}
	if cfg.Diagnostics.Color != "" {
		s.Color = cfg.Diagnostics.Color
	}
	if cfg.Diagnostics.Format != "" {
		s.Format = cfg.Diagnostics.Format
	}
	if cfg.Diagnostics.Max > 0 {
		s.MaxDiagnostics = cfg.Diagnostics.Max
	}
	if cfg.Check.Jobs > 0 {
		s.Jobs = cfg.Check.Jobs
	}
	if cfg.Check.Cache != nil {
		s.NoCache = !*cfg.Check.Cache
	}
}

// ApplyEnv overlays LEV_* environment variables.
func (s *Settings) ApplyEnv() {
	s.TraceLevel = env.Str("LEV_TRACE", s.TraceLevel)
	s.TraceOutput = env.Str("LEV_TRACE_OUTPUT", s.TraceOutput)
	s.Color = env.Str("LEV_COLOR", s.Color)
	s.Format = env.Str("LEV_FORMAT", s.Format)
	s.MaxDiagnostics = env.Int("LEV_MAX_DIAGNOSTICS", s.MaxDiagnostics)
	s.Jobs = env.Int("LEV_JOBS", s.Jobs)
	s.CacheDir = env.Str("LEV_CACHE_DIR", s.CacheDir)
	if env.Has("LEV_NO_CACHE") {
		s.NoCache = env.Bool("LEV_NO_CACHE")
	}
	if env.Has("NO_COLOR") {
		s.Color = "off"
	}
	if s.Jobs < 1 {
		s.Jobs = 1
	}
}

// Resolve loads lev.toml (if any) from startDir and layers the environment on top.
func Resolve(startDir string) (Settings, *Manifest, error) {
	s := Defaults()
	m, _, err := LoadManifest(startDir)
	if err != nil {
		return s, nil, err
	}
	s.ApplyConfig(m)
	s.ApplyEnv()
	return s, m, nil
}
