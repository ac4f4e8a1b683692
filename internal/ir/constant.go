package ir

import (
	"math"
	"strconv"

	"lev/internal/types"
)

// IntBits truncates v to the width of integer type t.
func IntBits(t types.Type, v uint64) uint64 {
	w := t.Width()
	if w >= 64 {
		return v
	}
	return v & (uint64(1)<<w - 1)
}

// FloatBits encodes f for float type t; f32 values are rounded to single precision first.
func FloatBits(t types.Type, f float64) uint64 {
	if t.Builtin == types.F32 {
		f = float64(float32(f))
	}
	return math.Float64bits(f)
}

func BoolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// SignExtend interprets the low Width(t) bits as a two's complement integer.
func SignExtend(t types.Type, bits uint64) int64 {
	w := t.Width()
	if w >= 64 {
		return int64(bits) //nolint:gosec // reinterpretation is intended
	}
	shift := 64 - w
	return int64(bits<<shift) >> shift //nolint:gosec // same
}

// FormatConst renders constant bits the way Dump and the LLVM emitter spell them.
func FormatConst(t types.Type, bits uint64) string {
	switch {
	case t.IsBool():
		if bits != 0 {
			return "true"
		}
		return "false"
	case !t.IsBuiltin():
		return strconv.FormatUint(bits, 10)
	case t.IsFloat():
		return strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64)
	case t.IsSigned():
		return strconv.FormatInt(SignExtend(t, bits), 10)
	default:
		return strconv.FormatUint(IntBits(t, bits), 10)
	}
}
