package lexer

import (
	"unicode/utf8"

	"lev/internal/source"
	"lev/internal/token"
)

// Lexer converts one source file into tokens, synthesizing Newline,
// Indent and Dedent from line structure.
type Lexer struct {
	file   *source.File
	cursor Cursor

	indents   []uint32      // стек уровней отступа, indents[0] == 0
	pending   []token.Token // синтезированные токены, ещё не отданные
	lineStart bool          // курсор стоит в начале физической строки
	lineOpen  bool          // на текущей логической строке уже был токен
	done      bool
	err       error
}

// New creates a lexer positioned at the start of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		indents:   []uint32{0},
		lineStart: true,
	}
}

// Tokenize lexes the whole file. The returned slice always ends with EOF.
// The first error aborts lexing and is returned as *Error.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := New(file)
	toks := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF,
// после ошибки - ту же ошибку.
func (lx *Lexer) Next() (token.Token, error) {
	for len(lx.pending) == 0 {
		if lx.err != nil {
			return token.Token{}, lx.err
		}
		lx.fill()
	}
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok, nil
}

// Depth reports how many indentation levels are currently open.
func (lx *Lexer) Depth() int {
	return len(lx.indents) - 1
}

// fill продвигает курсор, пока не появится хотя бы один токен или ошибка.
func (lx *Lexer) fill() {
	if lx.done {
		lx.push(token.Token{Kind: token.EOF, Span: lx.cursor.Here()})
		return
	}
	if lx.lineStart {
		lx.scanLineStart()
		return
	}

	for !lx.cursor.EOF() && isInlineSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	switch {
	case lx.cursor.EOF():
		lx.endLine(lx.cursor.Here(), "")
	case lx.cursor.Peek() == '\n':
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.endLine(lx.cursor.SpanFrom(m), "\n")
	case lx.atComment():
		lx.skipComment()
	default:
		tok, err := lx.scanToken()
		if err != nil {
			lx.err = err
			return
		}
		lx.lineOpen = true
		lx.push(tok)
	}
}

func (lx *Lexer) endLine(sp source.Span, text string) {
	if lx.lineOpen {
		lx.push(token.Token{Kind: token.Newline, Span: sp, Text: text})
	}
	lx.lineOpen = false
	lx.lineStart = true
}

// finish закрывает все уровни отступа и выдаёт EOF.
func (lx *Lexer) finish() {
	sp := lx.cursor.Here()
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.push(token.Token{Kind: token.EOF, Span: sp})
	lx.done = true
}

func (lx *Lexer) scanToken() (token.Token, error) {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch), ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) push(tok token.Token) {
	lx.pending = append(lx.pending, tok)
}
