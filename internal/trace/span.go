package trace

import (
	"sync/atomic"
	"time"
)

// seq orders events across goroutines; spanIDs names spans. Both start at 1.
var seq, spanIDs atomic.Uint64

// Span is one begin/end pair. A span begun on a disabled tracer or a gated
// scope is inert: End still measures time but emits nothing.
type Span struct {
	tracer  Tracer // nil — inert
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func emit(t Tracer, ev Event) {
	ev.Time = time.Now()
	ev.Seq = seq.Add(1)
	t.Emit(&ev)
}

func gated(t Tracer, scope Scope) bool {
	return t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope)
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{scope: scope, name: name, parent: parent, started: time.Now()}
	if gated(t, scope) {
		return s
	}
	s.tracer = t
	s.id = spanIDs.Add(1)
	emit(t, Event{Kind: KindSpanBegin, Scope: scope, SpanID: s.id, ParentID: parent, Name: name})
	return s
}

// End closes the span and returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.tracer != nil {
		emit(s.tracer, Event{
			Kind:     KindSpanEnd,
			Scope:    s.scope,
			SpanID:   s.id,
			ParentID: s.parent,
			Name:     s.name,
			Detail:   detail,
			Dur:      dur,
			Extra:    s.extra,
		})
	}
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for inert spans, so children of an inert span become roots.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if gated(t, scope) {
		return
	}
	emit(t, Event{Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}
