package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	be.Err(t, err, nil)
	be.Equal(t, lvl, LevelDetail)

	_, err = ParseLevel("loud")
	be.Err(t, err, "invalid trace level")
}

func TestLevelGatesScopes(t *testing.T) {
	be.True(t, LevelPhase.ShouldEmit(ScopePass))
	be.True(t, !LevelPhase.ShouldEmit(ScopeFile))
	be.True(t, LevelDetail.ShouldEmit(ScopeFile))
	be.True(t, !LevelDetail.ShouldEmit(ScopeFunction))
	be.True(t, LevelDebug.ShouldEmit(ScopeFunction))
	be.True(t, !LevelOff.ShouldEmit(ScopeDriver))
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "compile", 0)
	parse := Begin(tr, ScopePass, "parse", root.ID())
	parse.WithExtra("stmts", "3").WithExtra("file", "a.lev").End("ok")
	Begin(tr, ScopeFunction, "fn:main", parse.ID()).End("")
	root.End("")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	be.Equal(t, len(lines), 4)
	be.True(t, strings.Contains(lines[0], "→ compile"))
	be.True(t, strings.Contains(lines[2], "  ← parse (ok) {file=a.lev, stmts=3}"))
	be.True(t, strings.Contains(lines[3], "← compile"))
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeFunction, "fn:main", "lowered", 7)

	var ev map[string]any
	be.Err(t, json.Unmarshal(buf.Bytes(), &ev), nil)
	be.Equal(t, ev["kind"], "point")
	be.Equal(t, ev["scope"], "function")
	be.Equal[any](t, ev["parent_id"], float64(7))
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePass, name, "", 0)
	}
	Point(ring, ScopeFunction, "ignored", "", 0)

	snap := ring.Snapshot()
	names := make([]string, len(snap))
	for i, ev := range snap {
		names[i] = ev.Name
	}
	be.Equal(t, names, []string{"c", "d", "e"})

	var buf bytes.Buffer
	be.Err(t, ring.Dump(&buf, FormatText), nil)
	be.Equal(t, strings.Count(buf.String(), "\n"), 3)
}

func TestInertSpan(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	fn := Begin(tr, ScopeFunction, "fn:main", 0)
	be.Equal(t, fn.ID(), uint64(0))
	fn.WithExtra("k", "v").End("")
	Begin(Nop, ScopePass, "lex", 0).End("")
	be.Equal(t, buf.Len(), 0)
}

func TestEndEventCarriesDuration(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	span := Begin(tr, ScopePass, "lower", 0)
	time.Sleep(time.Millisecond)
	span.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	be.Equal(t, len(lines), 2)
	var end map[string]any
	be.Err(t, json.Unmarshal([]byte(lines[1]), &end), nil)
	be.Equal(t, end["kind"], "end")
	be.True(t, end["dur_us"].(float64) >= 1000)
}

func TestContextPropagation(t *testing.T) {
	be.Equal(t, FromContext(context.Background()), Nop)

	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	be.Equal(t, FromContext(ctx), Tracer(tr))

	span := Begin(FromContext(ctx), ScopeDriver, "run", 0)
	ctx = WithSpan(ctx, span)
	be.Equal(t, CurrentSpan(ctx), span.ID())
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	be.Err(t, err, nil)
	be.True(t, !tr.Enabled())

	tr, err = New(Config{Level: LevelError})
	be.Err(t, err, nil)
	_, isRing := tr.(*RingTracer)
	be.True(t, isRing)

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf, OutputPath: "x.ndjson"})
	be.Err(t, err, nil)
	Point(tr, ScopePass, "p", "", 0)
	be.True(t, strings.HasPrefix(buf.String(), "{"))
}
