package vm

import (
	"fmt"
	"io"
	"strings"

	"lev/internal/ir"
)

// Tracer writes one line per executed instruction or terminator.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a tracer writing to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// TraceInstr traces execution of an instruction.
func (t *Tracer) TraceInstr(depth int, m *ir.Module, fn *ir.Func, bb ir.BlockID, ins *ir.Instr) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "%s[%s bb%d] %s\n", strings.Repeat("  ", depth), fn.Name, bb, ir.FormatInstr(m, ins))
}

// TraceTerm traces execution of a terminator.
func (t *Tracer) TraceTerm(depth int, fn *ir.Func, bb ir.BlockID, term *ir.Terminator) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "%s[%s bb%d] %s\n", strings.Repeat("  ", depth), fn.Name, bb, ir.FormatTerm(term))
}
