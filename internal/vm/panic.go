package vm

import (
	"fmt"
	"strings"

	"lev/internal/source"
)

// PanicCode is a stable runtime error number, printed as VM<code>.
// Values never change once released.
type PanicCode int

const (
	PanicUseBeforeInit  PanicCode = 1001 // slot read before any store
	PanicTypeMismatch   PanicCode = 1003
	PanicDivisionByZero PanicCode = 1007 // integer / and %
	PanicStackOverflow  PanicCode = 1008
	PanicUnreachable    PanicCode = 1009
	PanicNoEntry        PanicCode = 1010 // entry function missing or malformed
	PanicUnimplemented  PanicCode = 1999
)

func (c PanicCode) String() string { return fmt.Sprintf("VM%d", c) }

type BacktraceFrame struct {
	FuncName string
	Span     source.Span
}

// VMError is a runtime panic. Backtrace lists the innermost frame first.
type VMError struct {
	Code      PanicCode
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame
}

func (p *VMError) Error() string { return fmt.Sprintf("panic %s: %s", p.Code, p.Message) }

// FormatWithFiles renders the panic for the terminal:
//
//	panic VM1007: integer division by zero
//	at main.lev:2:12
//	backtrace:
//	  0: div at main.lev:2:12
func (p *VMError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nat %s\n", p.Error(), spanLocation(files, p.Span))
	if len(p.Backtrace) == 0 {
		return sb.String()
	}
	sb.WriteString("backtrace:\n")
	for i, fr := range p.Backtrace {
		fmt.Fprintf(&sb, "  %d: %s at %s\n", i, fr.FuncName, spanLocation(files, fr.Span))
	}
	return sb.String()
}

// spanLocation is "path:line:col", or "<no-span>" when the span cannot be resolved.
func spanLocation(files *source.FileSet, sp source.Span) string {
	if files == nil || sp.Line == 0 || int(sp.File) >= files.Len() {
		return "<no-span>"
	}
	start, _ := files.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", files.Get(sp.File).Path, start.Line, start.Col)
}

// failf builds a VMError located at the innermost frame, with the whole
// call stack as backtrace.
func (vm *VM) failf(code PanicCode, format string, args ...any) *VMError {
	e := &VMError{Code: code, Message: fmt.Sprintf(format, args...)}
	n := len(vm.Stack)
	if n == 0 {
		return e
	}
	e.Span = vm.Stack[n-1].Span
	e.Backtrace = make([]BacktraceFrame, 0, n)
	for i := n - 1; i >= 0; i-- {
		fr := &vm.Stack[i]
		e.Backtrace = append(e.Backtrace, BacktraceFrame{FuncName: fr.Func.Name, Span: fr.Span})
	}
	return e
}

func (vm *VM) mismatch(want, got string) *VMError {
	return vm.failf(PanicTypeMismatch, "type mismatch: expected %s, got %s", want, got)
}
