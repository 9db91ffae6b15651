// Package velocut provides the static-linkage resolver used to produce a
// fully static native binary embedding the FFmpeg codec stack.
//
// The resolver decides which on-disk library representation gets linked, in
// what order, from which search paths, and verifies that the resulting binary
// carries no dynamic dependencies beyond an allow-list of baseline system
// libraries.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	velocut/             Root package with Target, Directive and Stream types
//	├── build/           High-level pipeline: resolve, emit, verify
//	├── manifest/        Library declarations with linkage mode and platform scope
//	├── resolve/         Eliminates archive-vs-import-stub ambiguity on disk
//	├── probe/           Asks the active compiler where its runtime archives live
//	├── emit/            Produces the ordered link-directive stream
//	├── verify/          Inspects built binaries' dynamic-import tables
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Plan a link and verify the result:
//
//	p := &build.Pipeline{
//	    Manifest:    manifest.Default(),
//	    Target:      velocut.MustParseTarget("x86_64-pc-windows-gnu"),
//	    SearchPaths: []string{"/opt/ffmpeg/lib"},
//	    Probe:       probe.NewCache(probe.DefaultCompiler()),
//	}
//
//	stream, err := p.Plan(ctx)
//	// hand stream.LinkerArgs() to the build tool, after all object inputs
//
//	err = p.VerifyBinary("out/app.exe", allow)
//
// # Directive Ordering
//
// Underlying linkers resolve symbols in a single left-to-right pass, so
// directive order is semantically significant. The stream must be placed
// after all compiled-object inputs in the final link invocation; directives
// presented earlier than the referencing code are silently ineffective.
//
// # Thread Safety
//
// Manifest and the probe Cache are safe for concurrent use. The resolve and
// emit stages run as a single sequential pass per build invocation.
package velocut
