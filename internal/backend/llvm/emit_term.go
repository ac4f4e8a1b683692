package llvm

import (
	"fmt"

	"lev/internal/ir"
)

func (fe *funcEmitter) emitTerminator(term *ir.Terminator) error {
	switch term.Kind {
	case ir.TermReturn:
		if !term.Return.HasValue {
			fe.line("ret void")
			return nil
		}
		v, err := fe.operand(term.Return.Value)
		if err != nil {
			return err
		}
		t, err := llvmType(fe.f.ValueType(term.Return.Value))
		if err != nil {
			return err
		}
		fe.line("ret %s %s", t, v)
	case ir.TermGoto:
		fe.line("br label %%bb%d", term.Goto.Target)
	case ir.TermIf:
		c, err := fe.operand(term.If.Cond)
		if err != nil {
			return err
		}
		fe.line("br i1 %s, label %%bb%d, label %%bb%d", c, term.If.Then, term.If.Else)
	case ir.TermUnreachable:
		fe.line("unreachable")
	case ir.TermNone:
		return fmt.Errorf("block has no terminator")
	default:
		return fmt.Errorf("unsupported terminator kind %d", term.Kind)
	}
	return nil
}
