package parser

import (
	"fmt"

	"lev/internal/source"
	"lev/internal/token"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	UnexpectedToken ErrorKind = iota + 1
	// Unimplemented marks grammar the language reserves but does not support yet.
	Unimplemented
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case Unimplemented:
		return "unimplemented"
	default:
		return "parse error"
	}
}

// Error is the first failure of a Parse call.
type Error struct {
	Kind     ErrorKind
	Got      token.Token
	Expected token.Kind // token.Invalid, если ожидалась категория (Want)
	Want     string     // "expression", "statement", ...; для Unimplemented - конструкция
	Span     source.Span
}

func (e *Error) Error() string {
	if e.Kind == Unimplemented {
		return fmt.Sprintf("%s is not implemented", e.Want)
	}
	want := e.Want
	if want == "" {
		want = e.Expected.Describe()
	}
	return fmt.Sprintf("expected %s, got %s", want, describeGot(e.Got))
}

func describeGot(tok token.Token) string {
	switch {
	case tok.IsLayout(), tok.Kind == token.EOF:
		return tok.Kind.Describe()
	case tok.Kind == token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case tok.IsLiteral() && !tok.IsKeyword():
		return fmt.Sprintf("%s %s", tok.Kind.Describe(), tok.Text)
	default:
		return tok.Kind.Describe()
	}
}
