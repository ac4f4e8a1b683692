package diagfmt

import (
	"encoding/json"
	"io"

	"lev/internal/diag"
	"lev/internal/source"
)

// JSONReport is the document `--format json` writes.
type JSONReport struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Omitted     int              `json:"omitted,omitempty"` // отрезано по Max
}

type JSONDiagnostic struct {
	Severity string          `json:"severity"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	At       JSONLocation    `json:"at"`
	Notes    []JSONNote      `json:"notes,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"` // OBS-диагностики: payload из заметки
}

type JSONNote struct {
	Message string       `json:"message"`
	At      JSONLocation `json:"at"`
}

// JSONLocation: Span is the byte range [start, end).
type JSONLocation struct {
	File    string    `json:"file,omitempty"`
	Span    [2]uint32 `json:"span"`
	Line    uint32    `json:"line,omitempty"`
	Col     uint32    `json:"col,omitempty"`
	EndLine uint32    `json:"end_line,omitempty"`
	EndCol  uint32    `json:"end_col,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) JSONLocation {
	loc := JSONLocation{Span: [2]uint32{sp.Start, sp.End}}
	file, _, ok := locate(b.fs, sp)
	if !ok {
		return loc
	}
	loc.File = file.FormatPath(b.opts.PathMode.String(), b.fs.BaseDir())
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(sp)
		loc.Line, loc.Col = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		At:       b.location(d.Primary),
	}
	if d.Code == diag.ObsTimings && len(d.Notes) == 1 && json.Valid([]byte(d.Notes[0].Msg)) {
		out.Data = json.RawMessage(d.Notes[0].Msg)
		return out
	}
	if b.opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, JSONNote{Message: n.Msg, At: b.location(n.Span)})
		}
	}
	return out
}

// BuildJSONReport converts bag without serializing it.
func BuildJSONReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) JSONReport {
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	report := JSONReport{
		Diagnostics: make([]JSONDiagnostic, 0, len(shown)),
		Omitted:     len(items) - len(shown),
	}
	for _, d := range shown {
		report.Diagnostics = append(report.Diagnostics, b.diagnostic(d))
		if d.Severity.IsError() {
			report.Errors++
		}
	}
	report.Count = len(report.Diagnostics)
	return report
}

// JSON writes the indented report followed by a newline.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(bag, fs, opts))
}
