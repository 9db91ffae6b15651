package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Phase indicates which pipeline stage the error occurred in
type Phase string

const (
	PhaseManifest Phase = "manifest" // library declaration
	PhaseResolve  Phase = "resolve"  // on-disk ambiguity repair
	PhaseProbe    Phase = "probe"    // compiler path lookup
	PhaseEmit     Phase = "emit"     // directive stream production
	PhaseVerify   Phase = "verify"   // post-link import inspection
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateEntry          Kind = "duplicate_entry"
	KindAmbiguousLinkTarget     Kind = "ambiguous_link_target"
	KindProbeUnavailable        Kind = "probe_unavailable"
	KindUnexpectedDynamicImport Kind = "unexpected_dynamic_import"
	KindInvalidInput            Kind = "invalid_input"
	KindNotFound                Kind = "not_found"
	KindIO                      Kind = "io"
)

// Error is the structured error type used throughout the resolver
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Library string
	File    string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Library != "" {
		b.WriteString(": library ")
		b.WriteString(e.Library)
	}

	if e.File != "" {
		if e.Library != "" {
			b.WriteString(" at ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.File)
	}

	if e.Detail != "" {
		if e.Library != "" || e.File != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Library sets the logical library name
func (b *Builder) Library(name string) *Builder {
	b.err.Library = name
	return b
}

// File sets the offending file path
func (b *Builder) File(path string) *Builder {
	b.err.File = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DuplicateEntry creates an error for a library registered twice
func DuplicateEntry(name string) *Error {
	return &Error{
		Phase:   PhaseManifest,
		Kind:    KindDuplicateEntry,
		Library: name,
		Detail:  "already registered",
	}
}

// AmbiguousLinkTarget creates an error for a library whose on-disk
// representations could not be disambiguated
func AmbiguousLinkTarget(name, file string, cause error) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindAmbiguousLinkTarget,
		Library: name,
		File:    file,
		Cause:   cause,
	}
}

// ProbeUnavailable creates a non-fatal error for a compiler artifact the
// toolchain could not locate
func ProbeUnavailable(artifact string) *Error {
	return &Error{
		Phase:   PhaseProbe,
		Kind:    KindProbeUnavailable,
		Library: artifact,
		Detail:  "compiler did not report a path",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// IO wraps a filesystem error with pipeline context
func IO(phase Phase, file string, cause error) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindIO,
		File:  file,
		Cause: cause,
	}
}

// UnexpectedDynamicImportError is returned when a built binary references
// dynamic libraries outside the allow-list
type UnexpectedDynamicImportError struct {
	Imports []string
}

// NewUnexpectedDynamicImportError creates an error naming every offending
// import, sorted for stable output
func NewUnexpectedDynamicImportError(imports []string) *UnexpectedDynamicImportError {
	sorted := make([]string, len(imports))
	copy(sorted, imports)
	sort.Strings(sorted)
	return &UnexpectedDynamicImportError{Imports: sorted}
}

func (e *UnexpectedDynamicImportError) Error() string {
	if len(e.Imports) == 0 {
		return "[verify] unexpected_dynamic_import: no imports specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("binary carries %d dynamic import(s) outside the allow-list:\n", len(e.Imports)))
	for _, name := range e.Imports {
		b.WriteString("  - ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteString("static linking failed for these dependencies; check that no import stub shadows the archive")

	return b.String()
}

// Is reports whether target matches this error type
func (e *UnexpectedDynamicImportError) Is(target error) bool {
	_, ok := target.(*UnexpectedDynamicImportError)
	return ok
}
