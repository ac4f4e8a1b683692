package lexer

import (
	"lev/internal/token"
)

// scanNumber: цифры и не больше одной точки ("1", "2.5", "3.").
// Вторая точка - RedundantDecimalPoint на ней самой, токен не дописывается.
func (lx *Lexer) scanNumber() (token.Token, error) {
	start := lx.cursor.Mark()
	kind := token.IntLit
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) {
			lx.cursor.Bump()
			continue
		}
		if b != '.' {
			break
		}
		dot := lx.cursor.Mark()
		lx.cursor.Bump()
		if kind == token.FloatLit {
			return token.Token{}, &Error{Kind: RedundantDecimalPoint, Span: lx.cursor.SpanFrom(dot), Char: '.'}
		}
		kind = token.FloatLit
	}
	tok := lx.text(start)
	tok.Kind = kind
	return tok, nil
}
