package driver

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"lev/internal/backend/llvm"
	"lev/internal/ir"
	"lev/internal/trace"
	"lev/internal/vm"
)

// RunOptions configures Run.
type RunOptions struct {
	Trace    io.Writer // построчная трасса инструкций VM, nil — выключена
	MaxDepth int
}

// Run executes main of a lowered module on the IR interpreter.
// Runtime failures are returned as *vm.VMError.
func Run(ctx context.Context, res *Result, opts RunOptions) (vm.Value, error) {
	if res == nil || res.Module == nil {
		return vm.Value{}, fmt.Errorf("nothing to run: no lowered module")
	}
	if err := ctx.Err(); err != nil {
		return vm.Value{}, err
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "run", trace.CurrentSpan(ctx))

	var tracer *vm.Tracer
	if opts.Trace != nil {
		tracer = vm.NewTracer(opts.Trace)
	}
	machine := vm.New(res.Module, res.FileSet, vm.Options{Trace: tracer, MaxDepth: opts.MaxDepth})
	v, err := machine.RunMain()

	span.WithExtra("steps", strconv.FormatUint(machine.Steps, 10))
	if err != nil {
		span.End(err.Error())
		return vm.Value{}, err
	}
	span.End(v.String())
	return v, nil
}

// EmitFormat selects the textual form Emit writes.
type EmitFormat uint8

const (
	EmitIR EmitFormat = iota + 1
	EmitLLVM
)

// ParseEmitFormat converts an --emit value.
func ParseEmitFormat(s string) (EmitFormat, error) {
	switch s {
	case "", "ir":
		return EmitIR, nil
	case "llvm", "ll":
		return EmitLLVM, nil
	default:
		return 0, fmt.Errorf("invalid emit format %q (expected: ir|llvm)", s)
	}
}

// Emit writes the lowered module of res to w.
func Emit(ctx context.Context, w io.Writer, res *Result, format EmitFormat) error {
	if res == nil || res.Module == nil {
		return fmt.Errorf("nothing to emit: no lowered module")
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "emit", trace.CurrentSpan(ctx))
	defer span.End("")

	switch format {
	case EmitLLVM:
		text, err := llvm.EmitModule(res.Module, llvm.Options{SourceName: res.File.Path})
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	default:
		return ir.Dump(w, res.Module)
	}
}
