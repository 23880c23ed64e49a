package engine

import "context"

// Engine is the opaque compiler front-end. Implementations read units
// through the session's file set, emit diagnostics through the session
// reporter, and write artifacts under the session's class output.
//
// Run is synchronous; internal worker threads are an implementation detail.
// A returned error is an engine-level fault that could not be expressed as
// a diagnostic; ordinary compile errors must go through the reporter.
type Engine interface {
	Name() string
	Run(ctx context.Context, sess *Session) error
}
