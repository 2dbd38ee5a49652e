// Package trace records spans around symbol loading and rendering.
//
// A batch run opens one batch span, a phase span per stage (load, render,
// export) and, at detail level, one request span per rendered symbol.
// Tracers write immediately (StreamTracer), keep the most recent events in
// memory (RingTracer), or both.
//
//	symdisplay render --trace=- --trace-level=detail lib.toml
//
// Levels:
//
//   - LevelOff: no tracing
//   - LevelError: ring dumps on failure only
//   - LevelPhase: batch and phase boundaries
//   - LevelDetail: per-request spans
//   - LevelDebug: everything, including per-part events
package trace
