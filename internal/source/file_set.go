package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every source file of a compilation. Files are never
// replaced: adding a path again creates a new version with a new FileID.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string // for relative paths in diagnostics; "" is the working dir
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0, 4),
		latest:  make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir falls back to the working directory when unset.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// SetBaseDir points relative diagnostic paths at dir, usually the project root.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

func (fs *FileSet) Len() int { return len(fs.files) }

// Add stores content as is; callers normalize first (see Normalize).
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source: file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	f := File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: indexLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	fs.files = append(fs.files, f)
	fs.latest[f.Path] = f.ID
	return f.ID
}

// Load reads path from disk and normalizes it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (stdin, tests), normalized like Load.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get panics on an id this set never issued.
func (fs *FileSet) Get(id FileID) *File {
	if uint64(id) >= uint64(len(fs.files)) {
		panic(fmt.Errorf("source: unknown file id %d", id))
	}
	return &fs.files[id]
}

// GetLatest returns the newest version of path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.GetLatest(path)
	if !ok {
		return nil, false
	}
	return fs.Get(id), true
}

// Resolve turns both ends of span into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.position(span.Start), f.position(span.End)
}
