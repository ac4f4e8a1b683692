package trace

import (
	"io"
	"sync"
)

// StreamTracer writes every admitted event straight to w.
type StreamTracer struct {
	gate
	mu   sync.Mutex
	w    io.Writer
	line func(dst []byte, ev *Event) []byte
	buf  []byte
	err  error // first write error; later events are dropped, compilation goes on
}

// NewStreamTracer: FormatAuto means text here, the extension rule lives in Config.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{gate: gate{level}, w: w, line: appendText}
	if format == FormatNDJSON {
		t.line = appendJSON
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.admits(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	t.buf = t.line(t.buf[:0], ev)
	_, t.err = t.w.Write(t.buf)
}

// Flush reports the first write error, then flushes w if it buffers.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w when it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
