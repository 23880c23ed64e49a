// Package engine defines the boundary to the compiler front-end and the
// per-invocation session state that crosses it.
//
// The front-end itself is an external collaborator consumed through the
// narrow Engine interface: it receives a Session (decoded units, file
// manager, diagnostic reporter, options, output paths) and reports what it
// found. The package also carries the capability interfaces for plugins and
// annotation processors, and Checker, the in-tree reference engine used by
// the CLI and tests.
//
// A Session is private to exactly one invocation. Its FileManager owns the
// resolved charset; introspecting the session after the invocation is the
// supported way to learn which decoding was actually used.
package engine
