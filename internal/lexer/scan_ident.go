package lexer

import (
	"unicode/utf8"

	"lev/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Юникодные буквы допустимы; прочие не-ASCII символы - ошибка.
func (lx *Lexer) scanIdentOrKeyword() (token.Token, error) {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if r >= utf8.RuneSelf && !isIdentStartRune(r) {
		lx.bumpRune()
		return token.Token{}, &Error{Kind: UnexpectedCharacter, Span: lx.cursor.SpanFrom(start), Char: r}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.text(start)
	tok.Kind = token.Ident
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok, nil
}
