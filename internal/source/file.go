package source

import (
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

type FileID uint32

// FileFlags records where a file came from and which normalizations fired.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // added from memory: stdin, tests
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one immutable version of a source file.
type File struct {
	ID      FileID
	Path    string // slash-separated, cleaned
	Content []byte // normalized
	LineIdx []uint32
	Hash    [32]byte // sha256 of Content; keys the check cache
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// indexLines records the offset of every '\n'.
func indexLines(content []byte) []uint32 {
	var idx []uint32
	for off := 0; ; {
		i := slices.Index(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, uint32(off)) // #nosec G115 -- FileSet.Add rejects files over 4GiB
		off++
	}
}

// position maps off to line and column. A '\n' belongs to the line it ends.
func (f *File) position(off uint32) LineCol {
	// newlines strictly before off
	line, _ := slices.BinarySearch(f.LineIdx, off)
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	n, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(err)
	}
	return LineCol{Line: n + 1, Col: off - start + 1}
}

// GetLine returns line n (1-based) without its '\n'; "" when out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || uint64(n) > uint64(len(f.LineIdx))+1 {
		return ""
	}
	lo, hi := 0, len(f.Content)
	if n > 1 {
		lo = int(f.LineIdx[n-2]) + 1
	}
	if int(n) <= len(f.LineIdx) {
		hi = int(f.LineIdx[n-1])
	}
	return string(f.Content[lo:max(lo, hi)])
}

// FormatPath renders Path for diagnostics. mode is absolute, relative,
// basename or auto; auto shortens long absolute paths to the base name.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if f.Flags&FileVirtual != 0 {
			break
		}
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
