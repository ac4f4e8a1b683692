package types

import "fmt"

// Kind enumerates the variants of a lev type.
type Kind uint8

const (
	// KindInferred is a placeholder resolved from context during lowering.
	KindInferred Kind = iota
	KindBuiltin
	// KindUserDefined carries only a name; such types are never elaborated.
	KindUserDefined
	// KindGeneric is reserved.
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindInferred:
		return "inferred"
	case KindBuiltin:
		return "builtin"
	case KindUserDefined:
		return "user-defined"
	case KindGeneric:
		return "generic"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Builtin enumerates primitive types.
type Builtin uint8

const (
	NoBuiltin Builtin = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
)

var builtinNames = [...]string{
	NoBuiltin: "?",
	I8:        "i8",
	I16:       "i16",
	I32:       "i32",
	I64:       "i64",
	U8:        "u8",
	U16:       "u16",
	U32:       "u32",
	U64:       "u64",
	F32:       "f32",
	F64:       "f64",
	Bool:      "bool",
}

func (b Builtin) String() string {
	if int(b) < len(builtinNames) {
		return builtinNames[b]
	}
	return fmt.Sprintf("Builtin(%d)", b)
}

// Type is the lev type descriptor. It is comparable; equality is structural.
type Type struct {
	Kind    Kind
	Builtin Builtin // for KindBuiltin
	Name    string  // for KindUserDefined
}

// Descriptor helpers ---------------------------------------------------------

// Inferred describes a type to be resolved from context.
func Inferred() Type { return Type{Kind: KindInferred} }

// MakeBuiltin describes a primitive type.
func MakeBuiltin(b Builtin) Type { return Type{Kind: KindBuiltin, Builtin: b} }

// MakeUserDefined describes a named type that is declared but not elaborated.
func MakeUserDefined(name string) Type { return Type{Kind: KindUserDefined, Name: name} }

// Generic describes the reserved generic type.
func Generic() Type { return Type{Kind: KindGeneric} }

// Часто используемые типы.
var (
	TypeI32  = MakeBuiltin(I32)
	TypeI64  = MakeBuiltin(I64)
	TypeF32  = MakeBuiltin(F32)
	TypeF64  = MakeBuiltin(F64)
	TypeBool = MakeBuiltin(Bool)
)

var builtinByName = func() map[string]Builtin {
	m := make(map[string]Builtin, len(builtinNames))
	for b := I8; b <= Bool; b++ {
		m[b.String()] = b
	}
	return m
}()

// Lookup maps a type name written in source to its type.
// Unknown names are user-defined types.
func Lookup(name string) Type {
	if b, ok := builtinByName[name]; ok {
		return MakeBuiltin(b)
	}
	return MakeUserDefined(name)
}

// IsBuiltin reports whether t is a primitive type.
func (t Type) IsBuiltin() bool { return t.Kind == KindBuiltin }

// IsInferred reports whether t still needs contextual resolution.
func (t Type) IsInferred() bool { return t.Kind == KindInferred }

// IsBool reports whether t is the builtin bool.
func (t Type) IsBool() bool { return t.Kind == KindBuiltin && t.Builtin == Bool }

// Label returns a user-friendly label.
func (t Type) Label() string {
	switch t.Kind {
	case KindInferred:
		return "_"
	case KindBuiltin:
		return t.Builtin.String()
	case KindUserDefined:
		return t.Name
	case KindGeneric:
		return "generic"
	default:
		return "?"
	}
}

func (t Type) String() string { return t.Label() }
