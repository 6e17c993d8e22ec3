package trace

import "errors"

// MultiTracer fans events out to several tracers; --trace-mode both pairs a
// stream with a ring.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer drops disabled tracers; the level is the most detailed of
// the rest.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{}
	for _, t := range tracers {
		if t == nil || !t.Enabled() {
			continue
		}
		m.tracers = append(m.tracers, t)
		m.level = max(m.level, t.Level())
	}
	return m
}

// Emit hands each tracer its own copy, since sinks assign Seq.
func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.tracers {
		cp := *ev
		t.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, t := range m.tracers {
		errs = append(errs, t.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

func (m *MultiTracer) Enabled() bool { return m.level > LevelOff }

// Ring returns the first ring tracer among the children, if any.
func (m *MultiTracer) Ring() (*RingTracer, bool) {
	for _, t := range m.tracers {
		if r, ok := t.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}
