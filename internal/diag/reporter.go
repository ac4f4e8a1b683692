package diag

import "lev/internal/source"

// Reporter принимает диагностики от драйвера. false — диагностика отброшена
// (лимит Bag или дубликат).
type Reporter interface {
	Report(d Diagnostic) bool
}

// BagReporter пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) bool {
	return r.Bag != nil && r.Bag.Add(d)
}

// DedupReporter forwards each distinct Key once.
type DedupReporter struct {
	next Reporter
	seen map[Key]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[Key]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) bool {
	k := d.Key()
	if _, dup := r.seen[k]; dup || r.next == nil {
		return false
	}
	r.seen[k] = struct{}{}
	return r.next.Report(d)
}

// ReportBuilder collects notes and emits the diagnostic once.
type ReportBuilder struct {
	d       Diagnostic
	emitted bool
}

func Build(sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{d: New(sev, code, primary, msg)}
}

func (b *ReportBuilder) Note(sp source.Span, msg string) *ReportBuilder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

// Emit reports to r; repeated calls are no-ops and return false.
func (b *ReportBuilder) Emit(r Reporter) bool {
	if b.emitted || r == nil {
		return false
	}
	b.emitted = true
	return r.Report(b.d)
}

func (b *ReportBuilder) Diagnostic() Diagnostic { return b.d }
