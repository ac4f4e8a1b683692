package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory; lev dumps it only when a
// command fails.
type RingTracer struct {
	gate
	mu    sync.Mutex
	buf   []Event
	total int // events ever stored; buf[total%len(buf)] is the next slot
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{gate: gate{level}, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.admits(ev) {
		return
	}
	t.mu.Lock()
	t.buf[t.total%len(t.buf)] = *ev
	t.total++
	t.mu.Unlock()
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := min(t.total, len(t.buf))
	out := make([]Event, n)
	start := t.total - n
	for i := range out {
		out[i] = t.buf[(start+i)%len(t.buf)]
	}
	return out
}

func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var line []byte
	for _, ev := range t.Snapshot() {
		if format == FormatNDJSON {
			line = appendJSON(line[:0], &ev)
		} else {
			line = appendText(line[:0], &ev)
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
