package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nalgeon/be"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	err := tm.Measure("parse", func() error { return errors.New("boom") })
	be.Err(t, err, "boom")
	tm.End(99, "ignored")

	report := tm.Report()
	be.Equal(t, len(report.Phases), 2)
	be.Equal(t, report.Phases[0].Note, "12 tokens")
	be.Equal(t, report.Phases[1].Name, "parse")
	be.Equal(t, report.Phases[1].Note, "failed")

	summary := tm.Summary()
	be.True(t, strings.HasPrefix(summary, "timings:\n  lex"))
	be.True(t, strings.Contains(summary, "// 12 tokens"))
	be.True(t, strings.Contains(summary, "  total"))
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_ = tm.Measure("file", func() error { return nil })
		})
	}
	wg.Wait()
	be.Equal(t, len(tm.Report().Phases), 8)
}

func TestReportWallClock(t *testing.T) {
	r := Report{TotalMS: 10, WallMS: 4, Phases: []PhaseReport{{Name: "a", DurationMS: 5}, {Name: "b", DurationMS: 5}}}
	be.True(t, strings.Contains(r.Summary(), "wall"))

	r.WallMS = 10
	be.True(t, !strings.Contains(r.Summary(), "wall"))

	tm := NewTimer()
	tm.End(tm.Begin("open"), "")
	tm.Begin("never ended")
	rep := tm.Report()
	be.Equal(t, rep.Phases[1].DurationMS, 0.0)
	be.True(t, rep.WallMS <= rep.TotalMS+0.001)
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	be.Equal(t, tm.Begin("x"), -1)
	tm.End(0, "")
	be.Equal(t, len(tm.Report().Phases), 0)
}
