package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"lev/internal/diag"
	"lev/internal/project"
	"lev/internal/source"
	"lev/internal/version"
)

// bump when CachePayload changes shape; older entries then read as misses
const cacheSchemaVersion uint16 = 1

// DiskCache keeps lev check results keyed by file content. Entries are
// written to a temp file and renamed into place, so concurrent checkers
// never see a torn entry. A nil *DiskCache is a cache that always misses.
type DiskCache struct {
	dir string // <root>/check
}

// CachePayload is what one checked file leaves on disk.
type CachePayload struct {
	Schema      uint16            `msgpack:"schema"`
	Path        string            `msgpack:"path"`
	Phase       Phase             `msgpack:"phase"`
	Diagnostics []diag.Diagnostic `msgpack:"diags"`
}

func OpenDiskCache(root string) (*DiskCache, error) {
	if root == "" {
		return nil, errors.New("cache directory is empty")
	}
	c := &DiskCache{dir: filepath.Join(root, "check")}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return c, nil
}

// CacheKey binds a file's content to the compiler version and the phase.
func CacheKey(file *source.File, phase Phase) project.Digest {
	return project.Combine(project.Digest(file.Hash), []byte(version.Version), []byte{byte(phase)})
}

func (c *DiskCache) entry(key project.Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put stores payload under key, stamping the current schema.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = cacheSchemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	return writeAtomic(c.entry(key), data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// Get fills out from the entry for key. Missing entries and entries of
// another schema are misses, not errors.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.entry(key))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", hex.EncodeToString(key[:8]), err)
	}
	return out.Schema == cacheSchemaVersion, nil
}

// Clear drops every entry.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// rebind moves cached diagnostics onto the FileID the file got in this run.
func rebind(diags []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	out := slices.Clone(diags)
	for i := range out {
		d := &out[i]
		d.Primary.File = id
		if len(d.Notes) == 0 {
			d.Notes = nil
			continue
		}
		d.Notes = slices.Clone(d.Notes)
		for j := range d.Notes {
			d.Notes[j].Span.File = id
		}
	}
	return out
}
