// Package diag defines the diagnostic model shared by all pipeline phases.
//
// A Diagnostic carries a Severity, a stable numeric Code, a short message,
// the primary source.Span and optional notes. Phases themselves return typed
// errors; the driver converts the first one into a Diagnostic and hands it
// to a Reporter. Rendering lives in internal/diagfmt.
//
// Codes are grouped by phase:
//
//   - LEX1xxx – lexical errors
//   - SYN2xxx – syntax errors
//   - SEM3xxx – lowering and name resolution errors
//   - IO4xxx  – file loading
//   - PRJ5xxx – project manifest
//   - OBS6xxx – observability (timings)
//
// Code values are stable; never renumber an existing code.
package diag
