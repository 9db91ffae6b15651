// Package resolve eliminates conflicting on-disk library representations
// before any linking decision is made.
//
// MinGW-class toolchains resolve -lfoo against both libfoo.a (a true
// archive) and libfoo.dll.a (an import stub that pulls in foo.dll at
// runtime). When both are reachable the linker picks one silently, and a
// build that was meant to be fully static can come out carrying an
// undeclared runtime DLL dependency while appearing to succeed.
//
// For every enabled static-mode library the Resolver scans the search
// directories and moves any import stub aside, leaving exactly one linkable
// representation reachable under the expected name. A stub that cannot be
// moved, or that is the only representation present, is an
// ambiguous_link_target error: the build must not proceed.
//
// Resolve is idempotent; running it on an already-resolved tree performs no
// filesystem mutation.
package resolve
