// Package fuzztests houses Go fuzz harnesses for the front of the lev
// pipeline (source -> lexer -> parser -> lowering). They look for panics,
// hangs and broken span invariants on arbitrary input.
//
// Сиды берутся из golden-кейсов testdata/*.md и из встроенного списка.
package fuzztests
