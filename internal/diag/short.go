package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"lev/internal/source"
)

// shortLine is one row of the short format.
type shortLine struct {
	kind string // error|warning|info|note
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.kind, l.code, l.path, l.line, l.col, l.msg)
}

// FormatShortDiagnostics renders "kind CODE path:line:col message" lines
// sorted by position. Notes become their own "note" lines when includeNotes
// is set. Spans of files unknown to fs are skipped.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	for _, d := range diags {
		code := d.Code.ID()
		if l, ok := shortAt(fs, d.Primary, kindLabel(d.Severity), code, d.Message); ok {
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortAt(fs, n.Span, "note", code, n.Msg); ok {
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.kind, b.kind),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortAt(fs *source.FileSet, sp source.Span, kind, code, msg string) (shortLine, bool) {
	if int(sp.File) >= fs.Len() {
		return shortLine{}, false
	}
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortLine{
		kind: kind,
		code: code,
		path: path,
		line: start.Line,
		col:  start.Col,
		msg:  oneLine(msg),
	}, true
}

func kindLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// oneLine folds every line break into a space.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(msg, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " "))
}
