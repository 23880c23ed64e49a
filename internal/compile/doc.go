// Package compile is the programmatic front door to one compiler
// invocation: it assembles immutable Arguments, drives the engine through a
// fresh session and collector, and shapes the outcome into an immutable
// Result instead of exit codes and stderr text.
//
// The orchestration is a small state machine (configured → running →
// completed) with no internal retry: fixing anything, an encoding option
// included, means building new Arguments and invoking again. Everything
// the engine can express as a diagnostic is recovered into the Result;
// Compile itself errors only when no Result can be produced at all.
package compile
