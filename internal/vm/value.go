package vm

import (
	"math"

	"lev/internal/ir"
	"lev/internal/types"
)

// Value is a runtime scalar: the raw bits in the IR constant encoding plus
// the static type that tells how to read them.
type Value struct {
	Type types.Type
	Bits uint64
}

func MakeInt(t types.Type, v int64) Value {
	return Value{Type: t, Bits: ir.IntBits(t, uint64(v))} //nolint:gosec // two's complement by design of the encoding
}

func MakeUint(t types.Type, v uint64) Value {
	return Value{Type: t, Bits: ir.IntBits(t, v)}
}

func MakeFloat(t types.Type, f float64) Value {
	return Value{Type: t, Bits: ir.FloatBits(t, f)}
}

func MakeBool(b bool) Value {
	return Value{Type: types.TypeBool, Bits: ir.BoolBits(b)}
}

// Int returns the sign-extended value of a signed integer.
func (v Value) Int() int64 { return ir.SignExtend(v.Type, v.Bits) }

// Uint returns the value of an unsigned integer.
func (v Value) Uint() uint64 { return ir.IntBits(v.Type, v.Bits) }

func (v Value) Float() float64 { return math.Float64frombits(v.Bits) }

func (v Value) Bool() bool { return v.Bits != 0 }

// IsValid reports whether v has been produced by an instruction.
func (v Value) IsValid() bool { return !v.Type.IsInferred() }

func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	return ir.FormatConst(v.Type, v.Bits) + ":" + v.Type.Label()
}
