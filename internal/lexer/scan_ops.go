package lexer

import (
	"lev/internal/token"
)

// scanOperatorOrPunct берёт самое длинное совпадение: "->" раньше "-".
func (lx *Lexer) scanOperatorOrPunct() (token.Token, error) {
	start := lx.cursor.Mark()
	for width := 2; width >= 1; width-- {
		k, ok := lx.punctAhead(width)
		if !ok {
			continue
		}
		lx.cursor.Skip(width)
		tok := lx.text(start)
		tok.Kind = k
		return tok, nil
	}
	ch := lx.cursor.Bump()
	return token.Token{}, &Error{Kind: UnexpectedCharacter, Span: lx.cursor.SpanFrom(start), Char: rune(ch)}
}

func (lx *Lexer) punctAhead(width int) (token.Kind, bool) {
	rest := lx.cursor.Rest()
	if len(rest) < width {
		return token.Invalid, false
	}
	return token.LookupPunct(string(rest[:width]))
}
