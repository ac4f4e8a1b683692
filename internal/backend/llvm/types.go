package llvm

import (
	"fmt"
	"math"
	"strconv"

	"lev/internal/ir"
	"lev/internal/types"
)

// llvmType maps a builtin type to its LLVM spelling. LLVM integers are
// signless, so i32 and u32 share "i32".
func llvmType(t types.Type) (string, error) {
	if !t.IsBuiltin() {
		return "", fmt.Errorf("type %s has no LLVM representation", t.Label())
	}
	switch t.Builtin {
	case types.Bool:
		return "i1", nil
	case types.F32:
		return "float", nil
	case types.F64:
		return "double", nil
	case types.I8, types.U8, types.I16, types.U16, types.I32, types.U32, types.I64, types.U64:
		return fmt.Sprintf("i%d", t.Width()), nil
	default:
		return "", fmt.Errorf("type %s has no LLVM representation", t.Label())
	}
}

// constant spells a literal operand. Floats use the hexadecimal double form,
// which LLVM accepts for both float and double when the value is exact.
func constant(t types.Type, bits uint64) (string, error) {
	if !t.IsBuiltin() {
		return "", fmt.Errorf("constant of type %s", t.Label())
	}
	switch {
	case t.IsBool():
		if bits != 0 {
			return "true", nil
		}
		return "false", nil
	case t.IsFloat():
		f := math.Float64frombits(bits)
		if t.Builtin == types.F32 {
			f = float64(float32(f))
		}
		return fmt.Sprintf("0x%016X", math.Float64bits(f)), nil
	default:
		return strconv.FormatInt(ir.SignExtend(t, bits), 10), nil
	}
}
