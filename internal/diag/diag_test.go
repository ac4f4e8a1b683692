package diag

import (
	"testing"

	"github.com/nalgeon/be"

	"lev/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnexpectedCharacter, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaIllFormed, "SEM3004"},
		{IOLoadFileError, "IO4001"},
		{ProjBadManifest, "PRJ5001"},
		{ObsTimings, "OBS6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			be.Equal(t, tt.code.ID(), tt.want)
		})
	}
	be.Equal(t, SemaAssignToImmutable.String(), "[SEM3002]: Assignment to immutable variable")
	be.Equal(t, Code(9999).Title(), "Unknown error")
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	be.True(t, b.Add(NewError(SynUnexpectedToken, source.Span{Start: 5, End: 6}, "b")))
	be.True(t, b.Add(New(SevWarning, SemaIllFormed, source.Span{Start: 1, End: 2}, "a")))
	be.True(t, !b.Add(NewError(SemaIllFormed, source.Span{}, "dropped")))
	be.Equal(t, b.Len(), 2)
	be.True(t, b.HasErrors())
	be.True(t, b.HasWarnings())

	b.Sort()
	be.Equal(t, b.Items()[0].Message, "a")
	be.Equal(t, b.Items()[1].Message, "b")
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaIllFormed, source.Span{}, "x"))
	other := NewBag(0)
	other.Add(NewError(SemaIllFormed, source.Span{Start: 1}, "y"))
	other.Add(NewError(SemaIllFormed, source.Span{Start: 2}, "z"))

	a.Merge(other)
	be.Equal(t, a.Len(), 3)
	be.Equal(t, a.Cap(), uint16(3))
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	r := BagReporter{Bag: bag}
	rb := Build(SevError, SemaAssignToImmutable, source.Span{Start: 4, End: 5}, "cannot assign").
		Note(source.Span{Start: 0, End: 3}, "declared here")
	be.True(t, rb.Emit(r))
	be.True(t, !rb.Emit(r))

	be.Equal(t, bag.Len(), 1)
	d := bag.Items()[0]
	be.Equal(t, d.Code, SemaAssignToImmutable)
	be.Equal(t, len(d.Notes), 1)
	be.Equal(t, d.Notes[0].Msg, "declared here")
}

func TestWithNoteDoesNotShareNotes(t *testing.T) {
	base := NewError(SemaIllFormed, source.Span{}, "x").WithNote(source.Span{}, "first")
	a := base.WithNote(source.Span{}, "a")
	b := base.WithNote(source.Span{}, "b")
	be.Equal(t, a.Notes[1].Msg, "a")
	be.Equal(t, b.Notes[1].Msg, "b")
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	be.True(t, r.Report(NewError(LexUnexpectedCharacter, sp, "unexpected character '$'")))
	be.True(t, !r.Report(NewError(LexUnexpectedCharacter, sp, "unexpected character '$'")))
	be.True(t, r.Report(NewError(LexUnexpectedCharacter, sp, "unexpected character '@'")))
	be.Equal(t, bag.Len(), 2)
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.lev", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaIllFormed,
			Message:  "another",
			Primary:  source.Span{File: id, Start: 2, End: 3, Line: 2},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: id, Start: 0, End: 1, Line: 1},
			Notes: []Note{
				{Span: source.Span{File: 42}, Msg: "unresolvable"},
				{Span: source.Span{File: id, Start: 2, End: 3, Line: 2}, Msg: "note line"},
			},
		},
	}

	want := "error SYN2001 sample.lev:1:1 first line second\n" +
		"note SYN2001 sample.lev:2:1 note line\n" +
		"warning SEM3004 sample.lev:2:1 another"
	be.Equal(t, FormatShortDiagnostics(diags, fs, true), want)
	be.Equal(t, FormatShortDiagnostics(nil, fs, true), "")
}
