package diagfmt

import (
	"fmt"
	"slices"
)

// PathMode picks how file paths appear in rendered diagnostics.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // as given, long absolute paths shortened
	PathModeAbsolute
	PathModeRelative // against FileSet.BaseDir
	PathModeBasename
)

// names double as the modes understood by source.File.FormatPath
var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode reads a --path-mode value.
func ParsePathMode(s string) (PathMode, error) {
	i := slices.Index(pathModeNames[:], s)
	if i < 0 {
		return PathModeAuto, fmt.Errorf("invalid path mode %q (expected auto|absolute|relative|basename)", s)
	}
	return PathMode(i), nil
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // source lines shown around the primary one
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool // line/col next to byte offsets
	PathMode         PathMode
	Max              int // caps the report, the Bag keeps everything
	IncludeNotes     bool
}
