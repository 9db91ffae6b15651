// Package emit produces the ordered link-directive stream consumed by the
// build tool.
//
// The Emitter interface keeps the emission strategy pluggable: the project
// overrides upstream emission behavior by supplying its own implementation,
// never by patching foreign build code in place. Standard is the active
// implementation.
//
// Standard walks the manifest's enabled entries in group precedence —
// primary libraries, external codecs, platform system libraries, then
// toolchain runtime archives — and emits a LinkLibrary directive for each.
// Entries living outside the default search path (a custom install prefix,
// or a directory reported by the toolchain probe) get a SearchPath
// directive immediately before the first LinkLibrary that depends on it.
//
// Identical manifest and target yield identical streams.
package emit
