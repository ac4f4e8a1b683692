package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lev/internal/source"
)

// Cursor walks the bytes of one file. Line is bumped on every '\n'
// so spans can carry their line without a lookup.
type Cursor struct {
	File  *source.File
	Off   uint32
	Line  uint32
	Limit uint32 // exclusive; len(File.Content) unless narrowed
}

// Mark is a saved cursor position.
type Mark struct {
	Off  uint32
	Line uint32
}

func NewCursor(f *source.File) Cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: %s: %w", f.Path, err))
	}
	return Cursor{File: f, Line: 1, Limit: n}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Rest is the unread part of the file.
func (c *Cursor) Rest() []byte { return c.File.Content[c.Off:c.Limit] }

// Peek returns the next byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if rest := c.Rest(); len(rest) > 0 {
		return rest[0]
	}
	return 0
}

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	rest := c.Rest()
	if len(rest) < 2 {
		return 0, 0, false
	}
	return rest[0], rest[1], true
}

// Bump consumes one byte and returns it, 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
	}
	return b
}

// Skip bumps n bytes.
func (c *Cursor) Skip(n int) {
	for ; n > 0; n-- {
		c.Bump()
	}
}

// Eat bumps only when the next byte is b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Bump()
	return true
}

func (c *Cursor) Mark() Mark   { return Mark{Off: c.Off, Line: c.Line} }
func (c *Cursor) Reset(m Mark) { c.Off, c.Line = m.Off, m.Line }

// SpanFrom covers m..cursor. Tokens never cross '\n', so the line of m is
// the line of the token.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.Off, End: c.Off, Line: m.Line}
}

// Here is the empty span at the cursor.
func (c *Cursor) Here() source.Span { return c.SpanFrom(c.Mark()) }
