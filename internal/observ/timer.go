// Package observ measures how long pipeline phases take.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type phase struct {
	name       string
	start, end time.Time
	note       string
}

// Timer records named phases. Safe for concurrent use: lev check times
// files from several goroutines. A nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 8)} }

// Begin opens a phase and returns its handle for End; -1 on a nil Timer.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phase{name: name, start: now})
	return len(t.phases) - 1
}

// End closes the phase; unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= 0 && idx < len(t.phases) {
		t.phases[idx].end = now
		t.phases[idx].note = note
	}
}

// Measure times fn; an error marks the phase "failed".
func (t *Timer) Measure(name string, fn func() error) error {
	idx := t.Begin(name)
	err := fn()
	note := ""
	if err != nil {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

// PhaseReport is one phase in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report: TotalMS sums the phases, WallMS spans first start to last end.
// They differ when phases overlap.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total"`
	WallMS  float64       `json:"wall_ms" msgpack:"wall"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, len(t.phases))}
	first, last := t.phases[0].start, t.phases[0].start
	for i, p := range t.phases {
		var d time.Duration
		if !p.end.IsZero() {
			d = p.end.Sub(p.start)
			if p.end.After(last) {
				last = p.end
			}
		}
		if p.start.Before(first) {
			first = p.start
		}
		r.TotalMS += millis(d)
		r.Phases[i] = PhaseReport{Name: p.name, DurationMS: millis(d), Note: p.note}
	}
	r.WallMS = millis(last.Sub(first))
	return r
}

func (t *Timer) Summary() string { return t.Report().Summary() }

// Summary renders the table printed by --timings.
func (r Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	if r.WallMS > 0 && r.WallMS < r.TotalMS {
		row("wall", r.WallMS, "phases overlap")
	}
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
