package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat periodically emits liveness events. Heartbeats without span
// ends in between point at a stuck loader or rule.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	probe    func() string
	stop     chan struct{}
	once     sync.Once
	done     sync.WaitGroup
}

// StartHeartbeat emits a heartbeat every interval until Stop. probe, when
// set, supplies the event detail (e.g. "12/40 bundles"). It returns nil
// when tracing is disabled or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, probe func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		probe:    probe,
		stop:     make(chan struct{}),
	}
	h.done.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.done.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-ticker.C:
			detail := fmt.Sprintf("#%d", beat)
			if h.probe != nil {
				if s := h.probe(); s != "" {
					detail += " " + s
				}
			}
			h.tracer.Emit(&Event{
				Time:   timeNow(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: detail,
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the heartbeat goroutine and waits for it. Safe on nil and
// when called twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.done.Wait()
}
