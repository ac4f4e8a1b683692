package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/diag"
	"lev/internal/project"
	"lev/internal/source"
	"lev/internal/trace"
	"lev/internal/vm"
)

const mainReturnsFive = "fn main() -> i32:\n    let x = 5\n    return x\n"

func TestCompileAndRun(t *testing.T) {
	ctx := context.Background()
	res := CompileSource(ctx, "main.lev", []byte(mainReturnsFive), Options{})
	be.Err(t, res.Err, nil)
	be.Equal(t, res.Bag.Len(), 0)
	be.True(t, res.Module != nil)

	v, err := Run(ctx, res, RunOptions{})
	be.Err(t, err, nil)
	be.Equal(t, v.Int(), int64(5))
}

func TestCompileStopsAtPhase(t *testing.T) {
	ctx := context.Background()
	lexed := CompileSource(ctx, "a.lev", []byte(mainReturnsFive), Options{Phase: PhaseLex})
	be.True(t, len(lexed.Tokens) > 0)
	be.True(t, lexed.Builder == nil)

	parsed := CompileSource(ctx, "a.lev", []byte(mainReturnsFive), Options{Phase: PhaseParse})
	be.Equal(t, len(parsed.Stmts), 1)
	be.True(t, parsed.Module == nil)

	_, err := Run(ctx, parsed, RunOptions{})
	be.Err(t, err, "nothing to run")
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("parse")
	be.Err(t, err, nil)
	be.Equal(t, p, PhaseParse)
	p, err = ParsePhase("")
	be.Err(t, err, nil)
	be.Equal(t, p, PhaseLower)
	_, err = ParsePhase("link")
	be.Err(t, err, "invalid phase")
}

func TestPhaseErrorsBecomeDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line uint32
	}{
		{"stray char", "fn main() -> i32:\n    return $\n", diag.LexUnexpectedCharacter, 2},
		{"second dot", "let x = 1.2.3\n", diag.LexRedundantDecimalPoint, 1},
		{"open string", "let s = \"abc\n", diag.LexUnterminatedString, 1},
		{"bad token", "fn main() -> i32:\n    return )\n", diag.SynUnexpectedToken, 2},
		{"while", "fn main() -> i32:\n    while true:\n        return 1\n    return 0\n", diag.SynUnimplemented, 2},
		{"undefined", "fn main() -> i32:\n    return y\n", diag.SemaUndefinedVariable, 2},
		{"missing return", "fn main() -> i32:\n    let x = 1\n", diag.SemaIllFormed, 1},
		{"string literal", "fn main() -> i32:\n    let s = \"hi\"\n    return 0\n", diag.SemaUnimplemented, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CompileSource(context.Background(), "e.lev", []byte(tt.src), Options{})
			be.True(t, res.Failed())
			be.Equal(t, res.Bag.Len(), 1)
			d := res.Bag.Items()[0]
			be.Equal(t, d.Code, tt.code)
			be.Equal(t, d.Severity, diag.SevError)
			be.Equal(t, d.Primary.Line, tt.line)
			be.Equal(t, d.Message, res.Err.Error())
		})
	}
}

func TestImmutableAssignmentNote(t *testing.T) {
	src := "fn main() -> i32:\n    let x = 1\n    x = 2\n    return x\n"
	res := CompileSource(context.Background(), "m.lev", []byte(src), Options{})
	d := res.Bag.Items()[0]
	be.Equal(t, d.Code, diag.SemaAssignToImmutable)
	be.Equal(t, len(d.Notes), 1)
	be.Equal(t, d.Notes[0].Span.Line, uint32(2))
	be.True(t, strings.Contains(d.Notes[0].Msg, "let mut"))

	short := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true)
	be.Equal(t, short, "note SEM3002 m.lev:2:9 'x' is declared here; use 'let mut' to allow assignment\n"+
		"error SEM3002 m.lev:3:5 cannot assign to immutable variable 'x'")
}

func TestErrorDiagnosticNonPhaseErrors(t *testing.T) {
	_, ok := ErrorDiagnostic(context.Canceled)
	be.True(t, !ok)

	d, ok := ErrorDiagnostic(&project.ManifestError{Path: "lev.toml", Err: errors.New("missing [package].name")})
	be.True(t, ok)
	be.Equal(t, d.Code, diag.ProjBadManifest)

	_, err := CompileFile(context.Background(), filepath.Join(t.TempDir(), "none.lev"), Options{})
	d, ok = ErrorDiagnostic(err)
	be.True(t, ok)
	be.Equal(t, d.Code, diag.IOLoadFileError)
}

func TestRuntimeErrorIsVMError(t *testing.T) {
	src := "fn main() -> i32:\n    let z = 0\n    return 10 / z\n"
	res := CompileSource(context.Background(), "div.lev", []byte(src), Options{})
	be.Err(t, res.Err, nil)

	_, err := Run(context.Background(), res, RunOptions{})
	var vmErr *vm.VMError
	be.True(t, errors.As(err, &vmErr))
	be.Equal(t, vmErr.Code, vm.PanicDivisionByZero)
}

func TestRunTrace(t *testing.T) {
	res := CompileSource(context.Background(), "main.lev", []byte(mainReturnsFive), Options{})
	var buf bytes.Buffer
	_, err := Run(context.Background(), res, RunOptions{Trace: &buf})
	be.Err(t, err, nil)
	be.True(t, strings.Contains(buf.String(), "[main bb0] %0 = const i32 5"))
}

func TestEmitFormats(t *testing.T) {
	ctx := context.Background()
	res := CompileSource(ctx, "main.lev", []byte(mainReturnsFive), Options{})

	var ir bytes.Buffer
	be.Err(t, Emit(ctx, &ir, res, EmitIR), nil)
	be.True(t, strings.HasPrefix(ir.String(), "fn main() -> i32:\n"))

	var ll bytes.Buffer
	be.Err(t, Emit(ctx, &ll, res, EmitLLVM), nil)
	be.True(t, strings.Contains(ll.String(), "define i32 @main() {"))

	f, err := ParseEmitFormat("ll")
	be.Err(t, err, nil)
	be.Equal(t, f, EmitLLVM)
	_, err = ParseEmitFormat("wasm")
	be.Err(t, err, "invalid emit format")
}

func TestObserverAndTimings(t *testing.T) {
	var events []string
	res := CompileSource(context.Background(), "main.lev", []byte(mainReturnsFive), Options{
		EnableTimings: true,
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseStart {
				events = append(events, "+"+ev.Name)
			} else {
				events = append(events, "-"+ev.Name)
			}
		},
	})
	be.Equal(t, events, []string{"+lex", "-lex", "+parse", "-parse", "+lower", "-lower", "+validate", "-validate"})
	be.Equal(t, len(res.Timings.Phases), 4)
	be.Equal(t, res.Timings.Phases[1].Note, "1 statements")

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaIllFormed, source.Span{}, "x"))
	AppendTimingDiagnostic(bag, "", "main.lev", res.Timings)
	be.Equal(t, bag.Len(), 2)
	be.Equal(t, bag.Items()[1].Code, diag.ObsTimings)
	be.True(t, strings.HasPrefix(bag.Items()[1].Notes[0].Msg, `{"kind":"pipeline","path":"main.lev"`))
}

func TestPassSpansAreTraced(t *testing.T) {
	var buf bytes.Buffer
	tracer := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tracer)

	CompileSource(ctx, "main.lev", []byte(mainReturnsFive), Options{})
	out := buf.String()
	for _, want := range []string{"→ lex", "← parse (1 statements)", "• fn:main", "← validate"} {
		be.True(t, strings.Contains(out, want))
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := CompileSource(ctx, "main.lev", []byte(mainReturnsFive), Options{})
	be.True(t, errors.Is(res.Err, context.Canceled))
	be.Equal(t, res.Bag.Len(), 0)
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		be.Err(t, os.MkdirAll(filepath.Dir(path), 0o755), nil)
		be.Err(t, os.WriteFile(path, []byte(content), 0o600), nil)
	}
	return dir
}

func TestCheckDir(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"ok.lev":         mainReturnsFive,
		"sub/bad.lev":    "fn main() -> i32:\n    return nope\n",
		"notes.txt":      "ignored",
		".hidden/x.lev":  "garbage $",
		"sub/lexbad.lev": "let x = 1..2\n",
	})

	var log chanLog
	report, err := CheckDir(context.Background(), dir, CheckOptions{Jobs: 2, Progress: log.record})
	be.Err(t, err, nil)

	paths := make([]string, len(report.Files))
	for i, f := range report.Files {
		paths[i] = f.Path
	}
	be.Equal(t, paths, []string{"ok.lev", "sub/bad.lev", "sub/lexbad.lev"})
	be.Equal(t, report.FailedFiles(), 2)
	be.True(t, !report.Files[0].Failed())

	short := diag.FormatShortDiagnostics(report.Bag().Items(), report.FileSet, false)
	be.Equal(t, short, "error SEM3001 sub/bad.lev:2:12 undefined variable 'nope'\n"+
		"error LEX1002 sub/lexbad.lev:1:11 redundant decimal point '.'")
	be.Equal(t, log.count(FileQueued), 3)
	be.Equal(t, log.count(FileOK)+log.count(FileFailed), 3)
}

func TestCheckDirCache(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"a.lev": mainReturnsFive,
		"b.lev": "fn main() -> i32:\n    let x = 1\n    x = 2\n    return x\n",
	})
	cache, err := OpenDiskCache(filepath.Join(t.TempDir(), "cache"))
	be.Err(t, err, nil)

	first, err := CheckDir(context.Background(), dir, CheckOptions{Cache: cache})
	be.Err(t, err, nil)
	be.True(t, !first.Files[0].Cached)

	var log chanLog
	second, err := CheckDir(context.Background(), dir, CheckOptions{Cache: cache, Progress: log.record})
	be.Err(t, err, nil)
	be.True(t, second.Files[0].Cached)
	be.True(t, second.Files[1].Cached)
	be.Equal(t, log.count(FileCached), 2)
	be.Equal(t, second.Files[1].Diagnostics, first.Files[1].Diagnostics)
	be.Equal(t, second.Files[1].Diagnostics[0].Notes[0].Span.File, second.Files[1].FileID)

	// другая фаза — другой ключ
	third, err := CheckDir(context.Background(), dir, CheckOptions{Cache: cache, Phase: PhaseParse})
	be.Err(t, err, nil)
	be.True(t, !third.Files[1].Cached)
	be.Equal(t, len(third.Files[1].Diagnostics), 0)

	be.Err(t, cache.Clear(), nil)
	fourth, err := CheckDir(context.Background(), dir, CheckOptions{Cache: cache})
	be.Err(t, err, nil)
	be.True(t, !fourth.Files[0].Cached)
}

func TestCheckDirTimings(t *testing.T) {
	dir := writeSources(t, map[string]string{"a.lev": mainReturnsFive})
	report, err := CheckDir(context.Background(), dir, CheckOptions{EnableTimings: true})
	be.Err(t, err, nil)
	names := []string{}
	for _, p := range report.Timings.Phases {
		names = append(names, p.Name)
	}
	be.Equal(t, names, []string{"load", "file:a.lev"})
}

func TestCheckDirEmpty(t *testing.T) {
	report, err := CheckDir(context.Background(), t.TempDir(), CheckOptions{})
	be.Err(t, err, nil)
	be.Equal(t, len(report.Files), 0)
	be.Equal(t, report.Bag().Len(), 0)
}
