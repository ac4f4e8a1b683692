package source

import (
	"path/filepath"
	"strings"
)

func normalizePath(p string) string { return filepath.ToSlash(filepath.Clean(p)) }

func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath makes p relative to baseDir; a path that would climb out
// of baseDir comes back absolute instead.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return normalizePath(abs), nil
	}
	return rel, nil
}

func BaseName(p string) string { return filepath.Base(p) }
