package vm

import (
	"lev/internal/ir"
)

func (vm *VM) operand(fr *Frame, v ir.Value) (Value, *VMError) {
	if v < 0 || int(v) >= len(fr.Values) || !fr.Values[v].IsValid() {
		return Value{}, vm.failf(PanicUseBeforeInit, "value %%%d used before definition", v)
	}
	return fr.Values[v], nil
}

func (vm *VM) execInstr(fr *Frame, ins *ir.Instr) *VMError {
	switch ins.Kind {
	case ir.InstrConst:
		fr.Values[ins.Dst] = Value{Type: ins.Type, Bits: ins.Const.Bits}

	case ir.InstrParam:
		if ins.Param.Index >= len(fr.Args) {
			return vm.failf(PanicTypeMismatch, "missing argument %d", ins.Param.Index)
		}
		fr.Values[ins.Dst] = fr.Args[ins.Param.Index]

	case ir.InstrLoad:
		s := &fr.Slots[ins.Load.Slot]
		if !s.IsInit {
			return vm.failf(PanicUseBeforeInit, "slot %q used before initialization", s.Name)
		}
		fr.Values[ins.Dst] = s.V

	case ir.InstrStore:
		v, err := vm.operand(fr, ins.Store.Value)
		if err != nil {
			return err
		}
		if v.Type != ins.Type {
			return vm.mismatch(ins.Type.Label(), v.Type.Label())
		}
		s := &fr.Slots[ins.Store.Slot]
		s.V = v
		s.IsInit = true

	case ir.InstrBinary:
		l, err := vm.operand(fr, ins.Binary.Left)
		if err != nil {
			return err
		}
		r, err := vm.operand(fr, ins.Binary.Right)
		if err != nil {
			return err
		}
		res, err := vm.evalBinary(ins.Binary.Op, ins.Type, l, r)
		if err != nil {
			return err
		}
		fr.Values[ins.Dst] = res

	case ir.InstrCompare:
		l, err := vm.operand(fr, ins.Compare.Left)
		if err != nil {
			return err
		}
		r, err := vm.operand(fr, ins.Compare.Right)
		if err != nil {
			return err
		}
		res, err := vm.evalCompare(ins.Compare.Pred, ins.Type, l, r)
		if err != nil {
			return err
		}
		fr.Values[ins.Dst] = res

	case ir.InstrCall:
		return vm.execCall(fr, ins)

	default:
		return vm.failf(PanicUnimplemented, "unimplemented: instruction kind %d", ins.Kind)
	}
	return nil
}

func (vm *VM) execCall(fr *Frame, ins *ir.Instr) *VMError {
	callee := ins.Call.Callee
	if callee < 0 || int(callee) >= len(vm.M.Funcs) {
		return vm.failf(PanicUnimplemented, "unimplemented: call to f%d", callee)
	}
	if len(vm.Stack) >= vm.MaxDepth {
		return vm.failf(PanicStackOverflow, "call depth exceeded %d frames", vm.MaxDepth)
	}
	args := make([]Value, len(ins.Call.Args))
	for i, a := range ins.Call.Args {
		v, err := vm.operand(fr, a)
		if err != nil {
			return err
		}
		args[i] = v
	}
	next := NewFrame(vm.M.Funcs[callee], args)
	next.retDst = ins.Dst
	// fr указывает в vm.Stack: после append он может стать недействительным.
	vm.Stack = append(vm.Stack, *next)
	return nil
}

func (vm *VM) execTerminator(fr *Frame, term *ir.Terminator) *VMError {
	switch term.Kind {
	case ir.TermGoto:
		fr.BB, fr.IP = term.Goto.Target, 0
	case ir.TermIf:
		cond, err := vm.operand(fr, term.If.Cond)
		if err != nil {
			return err
		}
		if !cond.Type.IsBool() {
			return vm.mismatch("bool", cond.Type.Label())
		}
		if cond.Bool() {
			fr.BB = term.If.Then
		} else {
			fr.BB = term.If.Else
		}
		fr.IP = 0
	case ir.TermReturn:
		var ret Value
		if term.Return.HasValue {
			v, err := vm.operand(fr, term.Return.Value)
			if err != nil {
				return err
			}
			ret = v
		}
		vm.popFrame(ret)
	case ir.TermUnreachable:
		return vm.failf(PanicUnreachable, "entered unreachable code")
	case ir.TermNone:
		return vm.failf(PanicUnimplemented, "%s: bb%d has no terminator", fr.Func.Name, fr.BB)
	default:
		return vm.failf(PanicUnimplemented, "unimplemented: terminator kind %d", term.Kind)
	}
	return nil
}

func (vm *VM) popFrame(ret Value) {
	dst := vm.Stack[len(vm.Stack)-1].retDst
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	if len(vm.Stack) == 0 {
		vm.result = ret
		vm.Halted = true
		return
	}
	caller := &vm.Stack[len(vm.Stack)-1]
	if dst != ir.NoValue {
		caller.Values[dst] = ret
	}
}
