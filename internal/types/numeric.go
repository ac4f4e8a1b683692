package types

import "fmt"

// Числовые предикаты определены только для builtin-типов.
// Запрос для любого другого вида - ошибка в компиляторе, а не в программе.

func (t Type) mustBuiltin(op string) Builtin {
	if t.Kind != KindBuiltin {
		panic(fmt.Errorf("types: %s on non-builtin type %s", op, t.Label()))
	}
	return t.Builtin
}

// IsInteger reports whether t is a signed or unsigned integer.
func (t Type) IsInteger() bool {
	b := t.mustBuiltin("IsInteger")
	return b >= I8 && b <= U64
}

// IsFloat reports whether t is f32 or f64.
func (t Type) IsFloat() bool {
	b := t.mustBuiltin("IsFloat")
	return b == F32 || b == F64
}

// IsSigned reports whether t is a signed integer or a float.
func (t Type) IsSigned() bool {
	b := t.mustBuiltin("IsSigned")
	return (b >= I8 && b <= I64) || b == F32 || b == F64
}

// IsNumeric reports whether arithmetic applies to t.
func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// Width returns the size of t in bits; bool is 1 bit wide.
func (t Type) Width() uint8 {
	switch t.mustBuiltin("Width") {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	case Bool:
		return 1
	default:
		return 0
	}
}
