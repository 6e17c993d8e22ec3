package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. It backs --trace-mode
// ring, where the buffer is dumped when the command finishes.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	start int // oldest event
	n     int
	level Level
}

// NewRingTracer keeps up to capacity events (4096 when capacity <= 0).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = nextSeq()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = stored
		t.n++
		return
	}
	// полный буфер: затираем самое старое событие
	t.buf[t.start] = stored
	t.start = (t.start + 1) % len(t.buf)
}

// Len returns the number of buffered events.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Snapshot returns the buffered events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the buffered events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// RingOf finds the ring buffer behind t: t itself or a ring inside a
// MultiTracer (--trace-mode both).
func RingOf(t Tracer) (*RingTracer, bool) {
	switch v := t.(type) {
	case *RingTracer:
		return v, true
	case *MultiTracer:
		return v.Ring()
	}
	return nil, false
}
