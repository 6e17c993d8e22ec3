// Package trace records what a doclint run is doing while it runs.
//
// Events are spans (begin/end pairs) and points, tagged with a Scope:
// driver for the whole run, file for one input bundle and decl for one
// documented declaration. The Level decides which scopes get through:
//
//	phase  - driver spans only
//	detail - driver + file
//	debug  - everything
//
// A Tracer either streams events (text or NDJSON) or keeps the last N of
// them in a ring buffer that can be dumped after a failure:
//
//	doclint check --trace=- --trace-level=detail src/
//	doclint check --trace=run.ndjson --trace-mode=both src/
//
// The tracer travels through context.Context; use Start to open a child
// span of whatever span the context already carries.
package trace
