// Package trace provides structured tracing for format string rendering.
//
// It records what the CLI and the renderer are doing (which command runs,
// which template is rendered, how each field is resolved) so that slow or
// failing batches can be diagnosed after the fact.
//
// # Usage
//
//	bracefmt render --trace=- --trace-level=detail greet.tmpl
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Events carry a scope: ScopeCommand (one CLI command), ScopeTemplate (one
// render call) or ScopeField (one replacement field). LevelPhase emits command
// events, LevelDetail adds templates, LevelDebug adds fields.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeCommand, "batch", 0)
//	defer span.End("")
package trace
