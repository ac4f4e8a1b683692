package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone      FamilyMask = 0
	FamilySignedInt FamilyMask = 1 << iota
	FamilyUnsignedInt
	FamilyFloat
	FamilyBool
	FamilyOther
)

const (
	FamilyIntegral = FamilySignedInt | FamilyUnsignedInt
	FamilyNumeric  = FamilyIntegral | FamilyFloat
	FamilyAny      = FamilyNumeric | FamilyBool | FamilyOther
)

// Family classifies t for operator checks. Non-builtin types are FamilyOther.
func (t Type) Family() FamilyMask {
	if t.Kind != KindBuiltin {
		return FamilyOther
	}
	switch {
	case t.Builtin == Bool:
		return FamilyBool
	case t.IsFloat():
		return FamilyFloat
	case t.IsSigned():
		return FamilySignedInt
	default:
		return FamilyUnsignedInt
	}
}
