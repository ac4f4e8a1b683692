package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.lev", []byte("a\nb\n"))
	file := fs.Get(id)

	be.Equal(t, file.LineIdx, []uint32{1, 3})
	be.True(t, file.Flags&FileVirtual != 0)
}

func TestNormalizeFlags(t *testing.T) {
	content, flags := Normalize([]byte{0xEF, 0xBB, 0xBF, 'x', '\r', '\n'})
	be.Equal(t, string(content), "x\n")
	be.True(t, flags&FileHadBOM != 0)
	be.True(t, flags&FileNormalizedCRLF != 0)
	be.True(t, flags&FileNormalizedNFC == 0)
}

func TestNormalizeLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb"))
	be.Equal(t, string(out), "a\rb")
	be.True(t, !changed)
}

func TestNormalizeNFC(t *testing.T) {
	// "e" + combining acute -> "é"
	content, flags := Normalize([]byte("café\n"))
	be.Equal(t, string(content), "café\n")
	be.True(t, flags&FileNormalizedNFC != 0)
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.lev", []byte("ab\ncd\n\nx"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // '\n' belongs to line 1
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, c := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		be.Equal(t, start, c.want)
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.lev", []byte("α\n"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	be.Equal(t, start, LineCol{Line: 1, Col: 1})
	be.Equal(t, end, LineCol{Line: 1, Col: 2})
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("g.lev", []byte("first\nsecond\n\nlast")))

	be.Equal(t, f.GetLine(0), "")
	be.Equal(t, f.GetLine(1), "first")
	be.Equal(t, f.GetLine(2), "second")
	be.Equal(t, f.GetLine(3), "")
	be.Equal(t, f.GetLine(4), "last")
	be.Equal(t, f.GetLine(5), "")
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("test.lev", []byte("version 1"), 0)
	id2 := fs.Add("./test.lev", []byte("version 2"), 0)

	be.True(t, id1 != id2)
	latest, ok := fs.GetLatest("test.lev")
	be.True(t, ok)
	be.Equal(t, latest, id2)
	be.Equal(t, string(fs.Get(id1).Content), "version 1")
	be.True(t, fs.Get(id1).Hash != fs.Get(id2).Hash)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lev")
	err := os.WriteFile(path, []byte("fn main() -> i32:\r\n    return 0\r\n"), 0o600)
	be.Err(t, err, nil)

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	be.Err(t, err, nil)

	f := fs.Get(id)
	be.True(t, f.Flags&FileNormalizedCRLF != 0)
	be.Equal(t, f.GetLine(2), "    return 0")
	be.Equal(t, f.FormatPath("relative", dir), "main.lev")
	be.Equal(t, f.FormatPath("basename", ""), "main.lev")

	_, err = fs.Load(filepath.Join(dir, "missing.lev"))
	be.Err(t, err)
}

func TestSetBaseDir(t *testing.T) {
	fs := NewFileSet()
	fs.SetBaseDir("/proj")
	be.Equal(t, fs.BaseDir(), "/proj")
	id := fs.Add("/proj/src/a.lev", []byte("x"), 0)
	be.Equal(t, fs.Get(id).FormatPath("relative", fs.BaseDir()), "src/a.lev")
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.lev")

	got, err := RelativePath(target, baseDir)
	be.Err(t, err, nil)
	be.Equal(t, got, normalizePath(target))
}
