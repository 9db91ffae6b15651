// Package build wires the resolver stages into a single sequential
// pipeline: repair on-disk ambiguity, emit the directive stream, and after
// the external link step, verify the produced binary's import table.
//
// A Pipeline describes one build invocation. Each stage blocks until
// complete; a failure aborts the remaining stages. There is no internal
// parallelism and no cancellation beyond the context passed to Plan.
package build
