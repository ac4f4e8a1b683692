package llvm

import (
	"fmt"
	"strings"

	"lev/internal/ir"
)

// emitInstr writes one instruction. Constants and parameters produce no
// text: their uses are spelled inline.
func (fe *funcEmitter) emitInstr(ins *ir.Instr) error {
	switch ins.Kind {
	case ir.InstrConst:
		c, err := constant(ins.Type, ins.Const.Bits)
		if err != nil {
			return err
		}
		fe.operands[ins.Dst] = c
		return nil

	case ir.InstrParam:
		fe.operands[ins.Dst] = fmt.Sprintf("%%p%d", ins.Param.Index)
		return nil

	case ir.InstrLoad:
		t, err := llvmType(ins.Type)
		if err != nil {
			return err
		}
		name := fe.value(ins.Dst)
		fe.line("%s = load %s, ptr %%s%d", name, t, ins.Load.Slot)
		return nil

	case ir.InstrStore:
		t, err := llvmType(ins.Type)
		if err != nil {
			return err
		}
		v, err := fe.operand(ins.Store.Value)
		if err != nil {
			return err
		}
		fe.line("store %s %s, ptr %%s%d", t, v, ins.Store.Slot)
		return nil

	case ir.InstrBinary:
		return fe.emitBinary(ins)

	case ir.InstrCompare:
		return fe.emitCompare(ins)

	case ir.InstrCall:
		return fe.emitCall(ins)

	default:
		return fmt.Errorf("unsupported instruction kind %d", ins.Kind)
	}
}

func (fe *funcEmitter) value(v ir.Value) string {
	name := fmt.Sprintf("%%v%d", v)
	fe.operands[v] = name
	return name
}

func (fe *funcEmitter) emitBinary(ins *ir.Instr) error {
	t, err := llvmType(ins.Type)
	if err != nil {
		return err
	}
	l, err := fe.operand(ins.Binary.Left)
	if err != nil {
		return err
	}
	r, err := fe.operand(ins.Binary.Right)
	if err != nil {
		return err
	}
	fe.line("%s = %s %s %s, %s", fe.value(ins.Dst), ins.Binary.Op, t, l, r)
	return nil
}

func (fe *funcEmitter) emitCompare(ins *ir.Instr) error {
	t, err := llvmType(ins.Type)
	if err != nil {
		return err
	}
	l, err := fe.operand(ins.Compare.Left)
	if err != nil {
		return err
	}
	r, err := fe.operand(ins.Compare.Right)
	if err != nil {
		return err
	}
	op := "icmp"
	if ins.Compare.Pred.IsFloat() {
		op = "fcmp"
	}
	fe.line("%s = %s %s %s %s, %s", fe.value(ins.Dst), op, ins.Compare.Pred, t, l, r)
	return nil
}

func (fe *funcEmitter) emitCall(ins *ir.Instr) error {
	callee := ins.Call.Callee
	if callee < 0 || int(callee) >= len(fe.m.mod.Funcs) {
		return fmt.Errorf("call to unknown function f%d", callee)
	}
	target := fe.m.mod.Funcs[callee]
	sig := fe.m.sigs[callee]
	if len(sig.params) != len(ins.Call.Args) {
		return fmt.Errorf("call to %s with %d arguments, want %d", target.Name, len(ins.Call.Args), len(sig.params))
	}
	args := make([]string, len(ins.Call.Args))
	for i, a := range ins.Call.Args {
		v, err := fe.operand(a)
		if err != nil {
			return err
		}
		args[i] = sig.params[i] + " " + v
	}
	fe.line("%s = call %s @%s(%s)", fe.value(ins.Dst), sig.ret, target.Name, strings.Join(args, ", "))
	return nil
}
