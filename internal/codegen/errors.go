package codegen

import (
	"fmt"

	"lev/internal/source"
)

// ErrorKind classifies lowering failures.
type ErrorKind uint8

const (
	// UndefinedVariable: a name that no enclosing scope binds.
	UndefinedVariable ErrorKind = iota + 1
	// AssignmentToImmutableVariable: assignment to a binding declared without `mut`.
	AssignmentToImmutableVariable
	// Unimplemented marks constructs the lowering engine does not support yet.
	Unimplemented
	// IllFormed covers type and structure violations: mismatched types,
	// out-of-range literals, redeclarations, missing returns.
	IllFormed
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case AssignmentToImmutableVariable:
		return "AssignmentToImmutableVariable"
	case Unimplemented:
		return "Unimplemented"
	case IllFormed:
		return "IllFormed"
	default:
		return "ErrorKind(?)"
	}
}

// Error is the first lowering failure of a compilation unit.
type Error struct {
	Kind ErrorKind
	Name string // имя переменной/функции, если есть
	Span source.Span
	Msg  string
	Decl source.Span // объявление переменной, только для AssignmentToImmutableVariable
}

func (e *Error) Error() string {
	switch e.Kind {
	case UndefinedVariable:
		if e.Msg != "" {
			return e.Msg
		}
		return fmt.Sprintf("undefined variable '%s'", e.Name)
	case AssignmentToImmutableVariable:
		return fmt.Sprintf("cannot assign to immutable variable '%s'", e.Name)
	case Unimplemented:
		return e.Msg + " is not implemented"
	default:
		return e.Msg
	}
}

func errUndefined(name string, span source.Span) error {
	return &Error{Kind: UndefinedVariable, Name: name, Span: span}
}

func errImmutable(name string, span, decl source.Span) error {
	return &Error{Kind: AssignmentToImmutableVariable, Name: name, Span: span, Decl: decl}
}

func errUnimplemented(span source.Span, format string, args ...any) error {
	return &Error{Kind: Unimplemented, Span: span, Msg: fmt.Sprintf(format, args...)}
}

func errIllFormed(span source.Span, format string, args ...any) error {
	return &Error{Kind: IllFormed, Span: span, Msg: fmt.Sprintf(format, args...)}
}
