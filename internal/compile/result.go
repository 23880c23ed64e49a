package compile

import (
	"buildjar/internal/diag"
	"buildjar/internal/engine"
)

// Result is the immutable outcome of one invocation: the binary success
// flag, the ordered diagnostics, and the engine session for introspection.
type Result struct {
	ok          bool
	diagnostics []diag.Diagnostic
	session     *engine.Session
}

func newResult(ok bool, diagnostics []diag.Diagnostic, session *engine.Session) *Result {
	return &Result{ok: ok, diagnostics: diagnostics, session: session}
}

// Ok reports whether compilation completed without an ERROR-kind
// diagnostic. There is no partial success: one invocation is ok or it is
// not.
func (r *Result) Ok() bool {
	return r.ok
}

// Diagnostics returns the collected diagnostics in emission order. The
// slice is private to this result; treat it as read-only.
func (r *Result) Diagnostics() []diag.Diagnostic {
	return r.diagnostics
}

// Session returns the engine session for introspection, e.g. which decoding
// charset was actually used. The session's lifetime is owned by the result,
// so the handle stays valid after the invoker is discarded.
func (r *Result) Session() *engine.Session {
	return r.session
}
