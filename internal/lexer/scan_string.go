package lexer

import (
	"lev/internal/token"
)

// scanString читает "..." в одну строку. Text включает кавычки;
// escape-последовательность съедает следующий байт без проверки.
// Незакрытая строка (EOF или '\n') - ошибка на открывающей кавычке.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	quote := lx.cursor.SpanFrom(start)
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			tok := lx.text(start)
			tok.Kind = token.StringLit
			return tok, nil
		case '\n':
			return token.Token{}, &Error{Kind: UnterminatedString, Span: quote, Char: '"', Detail: "newline in string literal"}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				continue
			}
		}
		lx.cursor.Bump()
	}
	return token.Token{}, &Error{Kind: UnterminatedString, Span: quote, Char: '"'}
}
