package lexer

import (
	"lev/internal/token"
)

const tabWidth = 4

// scanLineStart меряет отступ новой строки и сравнивает его со стеком.
// Пустые строки и строки из одного комментария отступ не меняют.
func (lx *Lexer) scanLineStart() {
	m := lx.cursor.Mark()
	var col uint32
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' {
			col++
		} else if b == '\t' {
			col += tabWidth
		} else if b != '\r' {
			break
		}
		lx.cursor.Bump()
	}

	switch {
	case lx.cursor.EOF():
		lx.finish()
		return
	case lx.cursor.Peek() == '\n':
		lx.cursor.Bump()
		return
	case lx.atComment():
		lx.skipComment()
		lx.cursor.Eat('\n')
		return
	}

	lx.lineStart = false
	ws := lx.text(m)
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		ws.Kind = token.Indent
		lx.push(ws)
	case col < top:
		here := lx.cursor.Here()
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.push(token.Token{Kind: token.Dedent, Span: here})
		}
		if lx.indents[len(lx.indents)-1] != col {
			lx.pending = nil
			lx.err = &Error{
				Kind:   UnexpectedCharacter,
				Span:   ws.Span,
				Detail: "unindent does not match any outer indentation level",
			}
		}
	}
}
