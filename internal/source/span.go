package source

import "fmt"

// Span is the half-open byte range [Start, End) of one file. Line is where
// it starts; lev tokens never cross a line break.
type Span struct {
	File       FileID
	Start, End uint32
	Line       uint32
}

func (s Span) Empty() bool              { return s.Start == s.End }
func (s Span) Len() uint32              { return s.End - s.Start }
func (s Span) Contains(off uint32) bool { return s.Start <= off && off < s.End }

// String: "file:line:start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d:%d:%d-%d", s.File, s.Line, s.Start, s.End)
}

// Cover is the smallest span holding s and other, which must share file and line.
func (s Span) Cover(other Span) Span {
	switch {
	case s.File != other.File:
		panic(fmt.Errorf("source: cover across files %d and %d", s.File, other.File))
	case s.Line != other.Line:
		panic(fmt.Errorf("source: cover across lines %d and %d", s.Line, other.Line))
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}
