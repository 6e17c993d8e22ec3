package driver

import "time"

// Stage is a per-bundle step.
type Stage string

const (
	StageLoad  Stage = "load"
	StageCheck Stage = "check"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the bundle is waiting to start.
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError means the bundle could not be loaded.
	StatusError Status = "error"
)

// Event reports progress for a bundle (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
