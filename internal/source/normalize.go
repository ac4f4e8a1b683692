package source

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// normalizers run in order; each reports whether it changed the input.
var normalizers = []struct {
	flag FileFlags
	fn   func([]byte) ([]byte, bool)
}{
	{FileHadBOM, removeBOM},
	{FileNormalizedCRLF, normalizeCRLF},
	{FileNormalizedNFC, normalizeNFC},
}

// Normalize strips a BOM, folds CRLF and applies NFC, and reports which fired.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	for _, n := range normalizers {
		var changed bool
		if content, changed = n.fn(content); changed {
			flags |= n.flag
		}
	}
	return content, flags
}

func removeBOM(content []byte) ([]byte, bool) {
	rest, ok := bytes.CutPrefix(content, utf8BOM)
	return rest, ok
}

// normalizeCRLF folds "\r\n"; a lone '\r' stays.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, lf), true
}

// normalizeNFC makes precomposed and decomposed spellings of one
// identifier the same bytes.
func normalizeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}
