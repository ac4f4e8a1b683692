package driver

import (
	"context"
	"fmt"

	"lev/internal/ast"
	"lev/internal/codegen"
	"lev/internal/diag"
	"lev/internal/ir"
	"lev/internal/lexer"
	"lev/internal/observ"
	"lev/internal/parser"
	"lev/internal/source"
	"lev/internal/token"
	"lev/internal/trace"
)

// Options configures one compilation.
type Options struct {
	Phase          Phase // 0 — PhaseLower
	MaxDiagnostics int
	EnableTimings  bool
	Observer       PhaseObserver
	BaseDir        string // для относительных путей; пусто — рабочая директория
}

// Result keeps every artifact produced before the pipeline stopped.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	Stmts   []ast.StmtID
	Module  *ir.Module

	// Err is the first phase error, unchanged (*lexer.Error, *parser.Error,
	// *codegen.Error or *ValidationError). Bag holds its diagnostic form.
	Err     error
	Bag     *diag.Bag
	Timings *observ.Report
}

// Failed reports whether a phase error stopped the pipeline.
func (r *Result) Failed() bool { return r.Err != nil }

// ValidationError wraps an ir.Validate failure: lowering accepted the program
// but produced a malformed module.
type ValidationError struct {
	Span source.Span
	Err  error
}

func (e *ValidationError) Error() string { return "invalid IR: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// CompileFile loads path and compiles it. Only I/O failures are returned as
// error; phase errors end up in the Result.
func CompileFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fs.SetBaseDir(opts.BaseDir)
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return CompileLoaded(ctx, fs, fs.Get(id), opts), nil
}

// CompileSource compiles an in-memory source under a virtual file name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	fs.SetBaseDir(opts.BaseDir)
	id := fs.AddVirtual(name, src)
	return CompileLoaded(ctx, fs, fs.Get(id), opts)
}

// CompileLoaded compiles a file that already lives in fs.
// fs is only read, so several goroutines may share it.
func CompileLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	if opts.Phase == 0 {
		opts.Phase = PhaseLower
	}
	res := &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	p := pipeline{
		ctx:      ctx,
		tracer:   trace.FromContext(ctx),
		parent:   trace.CurrentSpan(ctx),
		observer: opts.Observer,
	}
	if opts.EnableTimings {
		p.timer = observ.NewTimer()
	}

	res.Err = p.run(res, opts.Phase)
	if res.Err != nil {
		if d, ok := ErrorDiagnostic(res.Err); ok {
			diag.BagReporter{Bag: res.Bag}.Report(d)
		}
	}
	if p.timer != nil {
		report := p.timer.Report()
		res.Timings = &report
	}
	return res
}

type pipeline struct {
	ctx      context.Context
	tracer   trace.Tracer
	parent   uint64
	timer    *observ.Timer
	observer PhaseObserver
}

func (p *pipeline) run(res *Result, last Phase) error {
	err := p.phase("lex", func() (string, error) {
		toks, err := lexer.Tokenize(res.File)
		res.Tokens = toks
		return fmt.Sprintf("%d tokens", len(toks)), err
	})
	if err != nil || last == PhaseLex {
		return err
	}

	err = p.phase("parse", func() (string, error) {
		res.Builder = ast.NewBuilder(ast.Hints{})
		stmts, err := parser.Parse(res.Tokens, res.Builder)
		res.Stmts = stmts
		return fmt.Sprintf("%d statements", len(stmts)), err
	})
	if err != nil || last == PhaseParse {
		return err
	}

	err = p.phase("lower", func() (string, error) {
		mb := ir.NewModuleBuilder()
		if err := codegen.Compile(mb, res.Builder, res.Stmts); err != nil {
			return "", err
		}
		res.Module = mb.Module()
		for _, f := range res.Module.Funcs {
			trace.Point(p.tracer, trace.ScopeFunction, "fn:"+f.Name,
				fmt.Sprintf("%d blocks, %d slots", len(f.Blocks), len(f.Slots)), p.parent)
		}
		return fmt.Sprintf("%d functions", len(res.Module.Funcs)), nil
	})
	if err != nil {
		return err
	}

	return p.phase("validate", func() (string, error) {
		if err := ir.Validate(res.Module); err != nil {
			res.Module = nil
			return "", &ValidationError{
				Span: source.Span{File: res.File.ID, Line: 1},
				Err:  err,
			}
		}
		return "", nil
	})
}

// phase runs fn under a trace span, the timer and the observer.
func (p *pipeline) phase(name string, fn func() (string, error)) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	span := trace.Begin(p.tracer, trace.ScopePass, name, p.parent)
	idx := p.timer.Begin(name)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}

	note, err := fn()
	if err != nil {
		note = err.Error()
	}
	p.timer.End(idx, note)
	elapsed := span.End(note)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed, Err: err})
	}
	return err
}
