package engine

import "time"

// Stage describes a high-level phase within one invocation.
type Stage string

const (
	// StageDecode is the source loading and decoding stage.
	StageDecode Stage = "decode"
	// StageCheck is the front-end analysis stage.
	StageCheck Stage = "check"
	// StageEmit is the artifact writing stage.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the unit is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the unit is currently being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the unit finished the stage.
	StatusDone Status = "done"
	// StatusError indicates the stage failed for the unit.
	StatusError Status = "error"
)

// Event reports progress for a unit (or for the whole invocation when File
// is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
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
