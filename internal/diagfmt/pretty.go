package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lev/internal/diag"
	"lev/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file, start, ok := locate(fs, d.Primary)
	if !ok {
		fmt.Fprintf(w, "%s %s: %s\n",
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		return
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", file.FormatPath(opts.PathMode.String(), fs.BaseDir()), start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)
	writeSnippet(w, file, d.Primary, start, opts.Context, p)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nfile, nstart, ok := locate(fs, note.Span)
		if !ok {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), note.Msg)
			continue
		}
		fmt.Fprintf(w, "  %s %s (%s:%d:%d)\n",
			p.note.Sprint("note:"), note.Msg,
			nfile.FormatPath(opts.PathMode.String(), fs.BaseDir()), nstart.Line, nstart.Col)
	}
}

// writeSnippet печатает строку ошибки с соседями и каретку под span.
// Ширина каретки считается в колонках терминала, а не в байтах.
func writeSnippet(w io.Writer, file *source.File, sp source.Span, start source.LineCol, context int8, p palette) {
	ctx, err := safecast.Conv[uint32](context)
	if err != nil {
		ctx = 0
	}
	lines, err := safecast.Conv[uint32](len(file.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("diagfmt: line count overflow: %w", err))
	}
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lines)
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := file.GetLine(ln)
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(text))
		if ln != start.Line {
			continue
		}
		col := int(start.Col) - 1
		prefix := text[:min(col, len(text))]
		underlined := text[min(col, len(text)):min(col+int(sp.Len()), len(text))]
		pad := runewidth.StringWidth(expandTabs(prefix))
		width := max(runewidth.StringWidth(expandTabs(underlined)), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n",
			p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad),
			p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func locate(fs *source.FileSet, sp source.Span) (file *source.File, start source.LineCol, ok bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil, source.LineCol{}, false
	}
	file = fs.Get(sp.File)
	start, _ = fs.Resolve(sp)
	return file, start, true
}
