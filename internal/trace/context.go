package trace

import "context"

// ctxState is what a context carries for tracing: the sink and the span
// new spans should hang under.
type ctxState struct {
	tracer Tracer
	parent uint64
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the attached Tracer, Nop when there is none.
func FromContext(ctx context.Context) Tracer { return stateOf(ctx).tracer }

// WithTracer attaches t; a nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	st := stateOf(ctx)
	st.tracer = t
	if t == nil {
		st.tracer = Nop
	}
	return context.WithValue(ctx, ctxKey{}, st)
}

// CurrentSpan is the id set by WithSpan, 0 at the root.
func CurrentSpan(ctx context.Context) uint64 { return stateOf(ctx).parent }

// WithSpan makes span the parent of spans begun below ctx.
func WithSpan(ctx context.Context, span *Span) context.Context {
	st := stateOf(ctx)
	st.parent = span.ID()
	return context.WithValue(ctx, ctxKey{}, st)
}
