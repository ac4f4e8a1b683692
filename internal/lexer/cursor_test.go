package lexer

import (
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.lev", []byte(content)))
}

func TestCursorTracksLines(t *testing.T) {
	c := NewCursor(createFile("a\nbc"))
	be.Equal(t, c.Bump(), byte('a'))
	be.Equal(t, c.Line, uint32(1))
	be.Equal(t, c.Bump(), byte('\n'))
	be.Equal(t, c.Line, uint32(2))

	m := c.Mark()
	c.Bump()
	c.Bump()
	be.True(t, c.EOF())
	be.Equal(t, c.Bump(), byte(0))
	be.Equal(t, c.SpanFrom(m), source.Span{Start: 2, End: 4, Line: 2})

	c.Reset(Mark{Off: 0, Line: 1})
	be.Equal(t, c.Peek(), byte('a'))
}

func TestCursorPeek2AndEat(t *testing.T) {
	c := NewCursor(createFile("->"))
	b0, b1, ok := c.Peek2()
	be.True(t, ok)
	be.Equal(t, string([]byte{b0, b1}), "->")
	be.True(t, !c.Eat('>'))
	be.True(t, c.Eat('-'))
	_, _, ok = c.Peek2()
	be.True(t, !ok)
}
