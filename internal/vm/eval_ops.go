package vm

import (
	"math"

	"lev/internal/ir"
	"lev/internal/types"
)

// evalBinary applies op with wrap-around integer semantics at the width of t
// and IEEE semantics for floats (f32 results are rounded to single precision).
func (vm *VM) evalBinary(op ir.BinaryOp, t types.Type, l, r Value) (Value, *VMError) {
	if l.Type != t || r.Type != t {
		return Value{}, vm.mismatch(t.Label(), l.Type.Label()+", "+r.Type.Label())
	}
	switch op {
	case ir.OpAdd:
		return Value{Type: t, Bits: ir.IntBits(t, l.Bits+r.Bits)}, nil
	case ir.OpSub:
		return Value{Type: t, Bits: ir.IntBits(t, l.Bits-r.Bits)}, nil
	case ir.OpMul:
		return Value{Type: t, Bits: ir.IntBits(t, l.Bits*r.Bits)}, nil
	case ir.OpSDiv:
		a, b := l.Int(), r.Int()
		if b == 0 {
			return Value{}, vm.failf(PanicDivisionByZero, "integer division by zero")
		}
		if b == -1 {
			// MIN / -1 переполняется: заворачиваем как 0 - a
			return MakeInt(t, 0-a), nil
		}
		return MakeInt(t, a/b), nil
	case ir.OpUDiv:
		a, b := l.Uint(), r.Uint()
		if b == 0 {
			return Value{}, vm.failf(PanicDivisionByZero, "integer division by zero")
		}
		return MakeUint(t, a/b), nil
	case ir.OpFAdd:
		return MakeFloat(t, l.Float()+r.Float()), nil
	case ir.OpFSub:
		return MakeFloat(t, l.Float()-r.Float()), nil
	case ir.OpFMul:
		return MakeFloat(t, l.Float()*r.Float()), nil
	case ir.OpFDiv:
		return MakeFloat(t, l.Float()/r.Float()), nil
	case ir.OpAnd:
		return Value{Type: t, Bits: l.Bits & r.Bits}, nil
	case ir.OpOr:
		return Value{Type: t, Bits: l.Bits | r.Bits}, nil
	default:
		return Value{}, vm.failf(PanicUnimplemented, "unimplemented: binary op %s", op)
	}
}

func (vm *VM) evalCompare(p ir.Predicate, t types.Type, l, r Value) (Value, *VMError) {
	if l.Type != t || r.Type != t {
		return Value{}, vm.mismatch(t.Label(), l.Type.Label()+", "+r.Type.Label())
	}
	if p.IsFloat() {
		a, b := l.Float(), r.Float()
		unordered := math.IsNaN(a) || math.IsNaN(b)
		switch p {
		case ir.FCmpOEq:
			return MakeBool(!unordered && a == b), nil
		case ir.FCmpONe:
			return MakeBool(!unordered && a != b), nil
		case ir.FCmpOLt:
			return MakeBool(a < b), nil
		case ir.FCmpOLe:
			return MakeBool(a <= b), nil
		case ir.FCmpOGt:
			return MakeBool(a > b), nil
		case ir.FCmpOGe:
			return MakeBool(a >= b), nil
		case ir.FCmpUNe:
			return MakeBool(unordered || a != b), nil
		default:
			return Value{}, vm.failf(PanicUnimplemented, "unimplemented: compare %s", p)
		}
	}

	switch p {
	case ir.ICmpEq:
		return MakeBool(l.Bits == r.Bits), nil
	case ir.ICmpNe:
		return MakeBool(l.Bits != r.Bits), nil
	case ir.ICmpSLt:
		return MakeBool(l.Int() < r.Int()), nil
	case ir.ICmpSLe:
		return MakeBool(l.Int() <= r.Int()), nil
	case ir.ICmpSGt:
		return MakeBool(l.Int() > r.Int()), nil
	case ir.ICmpSGe:
		return MakeBool(l.Int() >= r.Int()), nil
	case ir.ICmpULt:
		return MakeBool(l.Uint() < r.Uint()), nil
	case ir.ICmpULe:
		return MakeBool(l.Uint() <= r.Uint()), nil
	case ir.ICmpUGt:
		return MakeBool(l.Uint() > r.Uint()), nil
	case ir.ICmpUGe:
		return MakeBool(l.Uint() >= r.Uint()), nil
	default:
		return Value{}, vm.failf(PanicUnimplemented, "unimplemented: compare %s", p)
	}
}
