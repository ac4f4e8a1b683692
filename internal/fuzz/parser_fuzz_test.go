package fuzztests

import (
	"context"
	"testing"
	"time"

	"lev/internal/driver"
	"lev/internal/testkit"
)

// parseTimeout is the maximum time allowed for compiling a single input.
const parseTimeout = 5 * time.Second

// FuzzPipelineNoPanic runs lexing, parsing, lowering and IR validation. Any
// failure must surface as a diagnostic, and accepted trees must keep their
// span invariants.
func FuzzPipelineNoPanic(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		res := driver.CompileSource(context.Background(), "fuzz.lev", clamp(input, maxFuzzInput), driver.Options{})
		if res.Err != nil {
			if res.Bag.Len() != 1 {
				t.Fatalf("error %v produced %d diagnostics", res.Err, res.Bag.Len())
			}
			return
		}
		if err := testkit.CheckSpanInvariants(res.Builder, res.Stmts, res.File); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}

// FuzzParserNoHang tests that the pipeline finishes on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() -> i32:\n    if true:\n        if true:\n            if true:\n                return 1\n"))
	f.Add([]byte("fn f() -> i32:\n    return f(f(f(f(f(1)))))\n"))
	f.Add([]byte("fn f(\n"))
	f.Add([]byte("if:\n  else:\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			driver.CompileSource(ctx, "fuzz.lev", input, driver.Options{Phase: driver.PhaseParse})
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
