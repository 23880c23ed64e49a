// Package diag defines the diagnostic model for one compiler invocation.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture what
//     the engine reported while compiling one set of arguments.
//   - Offer light-weight utilities (Reporter, Collector) that let producers
//     emit diagnostics without coupling to concrete storage or formatting.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Kind: severity enum (Error, Warning, Note, Other) defined in kind.go.
//   - Code: compact numeric identifier (see codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Pos: optional source position (path, 1-based line and column).
//
// A Collector is a strictly append-only log scoped to a single invocation:
// diagnostics are stored in emission order, never deduplicated, reordered or
// truncated, and the collector is sealed once the invocation completes. A
// fresh Collector is created per invocation; reuse would leak stale
// diagnostics between runs, so Add refuses to write after Seal.
//
// # Emitting diagnostics
//
// Engine phases emit through a diag.Reporter to decouple emission from
// storage. CollectorReporter appends into a Collector; NopReporter discards.
package diag
