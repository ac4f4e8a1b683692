package ir

import (
	"errors"
	"fmt"

	"lev/internal/types"
)

// Validate checks module invariants and returns every violation found.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Funcs {
		if f == nil {
			continue
		}
		if err := validateFunc(m, f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(m *Module, f *Func) error {
	if len(f.Blocks) == 0 {
		return errors.New("function has no blocks")
	}
	if f.Block(f.Entry) == nil {
		return fmt.Errorf("entry bb%d does not exist", f.Entry)
	}
	return errors.Join(
		validateBlocksTerminated(f),
		validateBlockTargets(f),
		validateOperands(m, f),
		validateTerminatorTypes(f),
	)
}

func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

func validateBlockTargets(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		for _, succ := range f.Blocks[i].Term.Successors() {
			if f.Block(succ) == nil {
				errs = append(errs, fmt.Errorf("bb%d: branch target bb%d does not exist", i, succ))
			}
		}
	}
	return errors.Join(errs...)
}

func validateOperands(m *Module, f *Func) error {
	defined := make([]bool, len(f.Values))
	for i := range f.Blocks {
		for j := range f.Blocks[i].Instrs {
			dst := f.Blocks[i].Instrs[j].Dst
			if dst >= 0 && int(dst) < len(defined) {
				defined[dst] = true
			}
		}
	}

	var errs []error
	checkValue := func(v Value, ctx string) {
		if v < 0 || int(v) >= len(defined) || !defined[v] {
			errs = append(errs, fmt.Errorf("%s: value %%%d is not defined", ctx, v))
		}
	}
	checkSlot := func(s Slot, ctx string) {
		if s < 0 || int(s) >= len(f.Slots) {
			errs = append(errs, fmt.Errorf("%s: slot s%d does not exist", ctx, s))
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Instrs {
			ins := &bb.Instrs[j]
			ctx := fmt.Sprintf("bb%d instr %d", i, j)
			for _, v := range ins.Operands() {
				checkValue(v, ctx)
			}
			switch ins.Kind {
			case InstrLoad:
				checkSlot(ins.Load.Slot, ctx)
			case InstrStore:
				checkSlot(ins.Store.Slot, ctx)
				if ins.Store.Slot >= 0 && int(ins.Store.Slot) < len(f.Slots) {
					if got, want := f.ValueType(ins.Store.Value), f.Slots[ins.Store.Slot].Type; got != want {
						errs = append(errs, fmt.Errorf("%s: store of %s into %s slot", ctx, got, want))
					}
				}
			case InstrParam:
				if ins.Param.Index < 0 || ins.Param.Index >= len(f.Params) {
					errs = append(errs, fmt.Errorf("%s: parameter %d does not exist", ctx, ins.Param.Index))
				}
			case InstrCall:
				errs = append(errs, validateCall(m, f, ins, ctx))
			case InstrBinary:
				l, r := f.ValueType(ins.Binary.Left), f.ValueType(ins.Binary.Right)
				if l != ins.Type || r != ins.Type {
					errs = append(errs, fmt.Errorf("%s: %s on %s and %s, want %s", ctx, ins.Binary.Op, l, r, ins.Type))
				}
			case InstrCompare:
				l, r := f.ValueType(ins.Compare.Left), f.ValueType(ins.Compare.Right)
				if l != ins.Type || r != ins.Type {
					errs = append(errs, fmt.Errorf("%s: compare %s on %s and %s, want %s", ctx, ins.Compare.Pred, l, r, ins.Type))
				}
			case InstrConst:
			}
		}
		ctx := fmt.Sprintf("bb%d terminator", i)
		switch bb.Term.Kind {
		case TermReturn:
			if bb.Term.Return.HasValue {
				checkValue(bb.Term.Return.Value, ctx)
			}
		case TermIf:
			checkValue(bb.Term.If.Cond, ctx)
		case TermNone, TermGoto, TermUnreachable:
		}
	}
	return errors.Join(errs...)
}

func validateCall(m *Module, f *Func, ins *Instr, ctx string) error {
	callee := ins.Call.Callee
	if callee < 0 || int(callee) >= len(m.Funcs) {
		return fmt.Errorf("%s: callee f%d does not exist", ctx, callee)
	}
	target := m.Funcs[callee]
	if len(ins.Call.Args) != len(target.Params) {
		return fmt.Errorf("%s: call to %s with %d arguments, want %d", ctx, target.Name, len(ins.Call.Args), len(target.Params))
	}
	var errs []error
	for k, a := range ins.Call.Args {
		if got, want := f.ValueType(a), target.Params[k].Type; got != want {
			errs = append(errs, fmt.Errorf("%s: argument %d of %s is %s, want %s", ctx, k, target.Name, got, want))
		}
	}
	return errors.Join(errs...)
}

func validateTerminatorTypes(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		t := &f.Blocks[i].Term
		switch t.Kind {
		case TermReturn:
			if !t.Return.HasValue {
				if f.Result != (types.Type{}) {
					errs = append(errs, fmt.Errorf("bb%d: return without value, want %s", i, f.Result))
				}
				continue
			}
			if got := f.ValueType(t.Return.Value); got != f.Result {
				errs = append(errs, fmt.Errorf("bb%d: return type mismatch: got %s, want %s", i, got, f.Result))
			}
		case TermIf:
			if got := f.ValueType(t.If.Cond); !got.IsBool() {
				errs = append(errs, fmt.Errorf("bb%d: if condition is %s, want bool", i, got))
			}
		case TermNone, TermGoto, TermUnreachable:
		}
	}
	return errors.Join(errs...)
}
