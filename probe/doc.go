// Package probe locates auxiliary runtime archives shipped by the active
// compiler itself (libgcc_eh.a and friends) whose directory varies by
// toolchain version and install.
//
// The Cache asks the compiler to resolve an artifact with
// -print-file-name and derives the containing directory. Results are
// cached for the cache's lifetime; a Cache belongs to one build invocation
// and is never persisted, since toolchain paths change between
// environments.
//
// Probe failures are non-fatal: the caller skips the corresponding
// search-path directive and defers failure to link time.
package probe
