package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"lev/internal/token"
)

// peekRune decodes the rune under the cursor; size 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	if len(rest) == 0 {
		return utf8.RuneError, 0
	}
	if rest[0] < utf8.RuneSelf {
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// bumpRune skips a whole rune. A multibyte rune is never '\n', so
// Skip never moves Line here.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Skip(sz)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isIdentStartByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// combining marks (Mn) may continue an identifier, e.g. decomposed accents
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isInlineSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

var commentPrefix = []byte("//")

func (lx *Lexer) atComment() bool { return bytes.HasPrefix(lx.cursor.Rest(), commentPrefix) }

// skipComment stops before the '\n' so the layout pass still sees it.
func (lx *Lexer) skipComment() {
	if i := bytes.IndexByte(lx.cursor.Rest(), '\n'); i >= 0 {
		lx.cursor.Skip(i)
		return
	}
	lx.cursor.Skip(len(lx.cursor.Rest()))
}

func (lx *Lexer) text(m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
