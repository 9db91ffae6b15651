// Package verify inspects a built binary's dynamic-import table and
// enforces the static-linkage contract: every import must belong to an
// allow-list of baseline system libraries.
//
// The allow-list is external configuration, not a constant: the acceptable
// set varies by target OS version and toolchain, so the package loads it
// from a YAML file or takes it from the caller.
//
// A non-empty difference between the import table and the allow-list means
// static linking silently failed for those dependencies, commonly because
// an import stub shadowed the true archive at link time. The failure names
// every offender.
package verify
