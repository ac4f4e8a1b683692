package llvm

import (
	"fmt"
	"strings"

	"lev/internal/ir"
)

// funcEmitter writes one function. operands maps IR values to the LLVM
// spelling of their definition.
type funcEmitter struct {
	m        *moduleEmitter
	f        *ir.Func
	operands map[ir.Value]string
}

func (me *moduleEmitter) function(f *ir.Func) error {
	sig := me.sigs[f.ID]
	params := make([]string, len(sig.params))
	for i, t := range sig.params {
		params[i] = fmt.Sprintf("%s %%p%d", t, i)
	}
	fmt.Fprintf(&me.out, "define %s @%s(%s) {\n", sig.ret, f.Name, strings.Join(params, ", "))

	fe := &funcEmitter{m: me, f: f, operands: make(map[ir.Value]string, len(f.Values))}
	for _, bb := range fe.blockOrder() {
		fmt.Fprintf(&me.out, "bb%d:\n", bb.ID)
		if bb.ID == f.Entry {
			if err := fe.allocas(); err != nil {
				return err
			}
		}
		if err := fe.block(bb); err != nil {
			return fmt.Errorf("function %s bb%d: %w", f.Name, bb.ID, err)
		}
	}
	me.out.WriteString("}\n")
	return nil
}

func (fe *funcEmitter) block(bb *ir.Block) error {
	for i := range bb.Instrs {
		if err := fe.emitInstr(&bb.Instrs[i]); err != nil {
			return err
		}
	}
	return fe.emitTerminator(&bb.Term)
}

// blockOrder follows Layout but puts the entry block first; LLVM
// requires it.
func (fe *funcEmitter) blockOrder() []*ir.Block {
	order := make([]*ir.Block, 0, len(fe.f.Layout))
	if entry := fe.f.Block(fe.f.Entry); entry != nil {
		order = append(order, entry)
	}
	for _, id := range fe.f.Layout {
		if bb := fe.f.Block(id); bb != nil && id != fe.f.Entry {
			order = append(order, bb)
		}
	}
	return order
}

// allocas hoists every stack slot into the entry block.
func (fe *funcEmitter) allocas() error {
	for i, s := range fe.f.Slots {
		t, err := llvmType(s.Type)
		if err != nil {
			return fmt.Errorf("slot %s: %w", s.Name, err)
		}
		if s.Name == "" {
			fe.line("%%s%d = alloca %s", i, t)
			continue
		}
		fe.line("%%s%d = alloca %s ; %s", i, t, s.Name)
	}
	return nil
}

func (fe *funcEmitter) line(format string, args ...any) {
	fe.m.out.WriteString("  ")
	fmt.Fprintf(&fe.m.out, format, args...)
	fe.m.out.WriteByte('\n')
}

func (fe *funcEmitter) operand(v ir.Value) (string, error) {
	if s, ok := fe.operands[v]; ok {
		return s, nil
	}
	return "", fmt.Errorf("value %%%d used before definition", v)
}
