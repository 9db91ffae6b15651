// Package errors provides structured error types for the static-linkage
// resolver.
//
// Errors are categorized by Phase (which pipeline stage failed) and Kind
// (error category). The Error type includes rich context: library name,
// offending file path, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindAmbiguousLinkTarget).
//		Library("x264").
//		File("/opt/ffmpeg/lib/libx264.dll.a").
//		Detail("import stub could not be moved aside").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DuplicateEntry("x264")
//	err := errors.ProbeUnavailable("libgcc_eh.a")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
