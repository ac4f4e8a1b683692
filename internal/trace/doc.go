// Package trace records what the lev driver is doing while it does it.
//
// Tracing is off by default. Enable it with flags or environment:
//
//	lev compile --trace=- --trace-level=phase main.lev
//	LEV_TRACE=detail LEV_TRACE_OUTPUT=trace.ndjson lev check ./examples
//
// Implementations:
//
//   - Nop: disabled tracing, no allocations
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//
// Levels gate scopes: phase shows driver and pass spans (lex, parse, lower,
// validate, emit, run), detail adds per-file spans of `lev check`, debug adds
// per-function spans from lowering.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
