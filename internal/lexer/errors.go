package lexer

import (
	"fmt"

	"lev/internal/source"
)

// ErrorKind classifies a lexing failure.
type ErrorKind uint8

const (
	// UnexpectedCharacter covers stray bytes and indentation that matches no open level.
	UnexpectedCharacter ErrorKind = iota + 1
	// RedundantDecimalPoint is a second '.' inside a number.
	RedundantDecimalPoint
	// UnterminatedString is a string literal without its closing quote.
	UnterminatedString
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case RedundantDecimalPoint:
		return "redundant decimal point"
	case UnterminatedString:
		return "unterminated string"
	default:
		return "lex error"
	}
}

// Error is the single error a tokenization can end with.
type Error struct {
	Kind   ErrorKind
	Span   source.Span
	Char   rune // offending character, 0 for layout errors
	Detail string
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Char != 0:
		return fmt.Sprintf("%s %q", e.Kind, e.Char)
	default:
		return e.Kind.String()
	}
}
