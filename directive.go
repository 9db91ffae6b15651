package velocut

import "fmt"

// LinkMode selects the on-disk representation a library is linked from.
type LinkMode uint8

const (
	// ModeStatic links the library's true archive; its code is copied into
	// the final binary.
	ModeStatic LinkMode = iota
	// ModeDynamic links an import stub; the library is loaded at runtime.
	ModeDynamic
)

// String implements fmt.Stringer.
func (m LinkMode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("LinkMode(%d)", uint8(m))
	}
}

// ParseLinkMode parses "static" or "dynamic".
func ParseLinkMode(s string) (LinkMode, error) {
	switch s {
	case "static":
		return ModeStatic, nil
	case "dynamic":
		return ModeDynamic, nil
	default:
		return 0, fmt.Errorf("velocut: invalid link mode %q", s)
	}
}

// DirectiveKind discriminates the Directive variant.
type DirectiveKind uint8

const (
	// DirectiveSearchPath adds a directory to the linker's library search path.
	DirectiveSearchPath DirectiveKind = iota
	// DirectiveLinkLibrary references a library by logical name.
	DirectiveLinkLibrary
)

// Directive is a single instruction for the build tool: either a search-path
// addition or a library reference. Directives are ordered; underlying linkers
// resolve symbols in a single left-to-right pass, so reordering changes
// meaning.
type Directive struct {
	Kind DirectiveKind
	Path string   // DirectiveSearchPath
	Name string   // DirectiveLinkLibrary
	Mode LinkMode // DirectiveLinkLibrary
}

// SearchPath constructs a search-path directive.
func SearchPath(path string) Directive {
	return Directive{Kind: DirectiveSearchPath, Path: path}
}

// LinkLibrary constructs a library-reference directive.
func LinkLibrary(name string, mode LinkMode) Directive {
	return Directive{Kind: DirectiveLinkLibrary, Name: name, Mode: mode}
}

// String renders the directive in GNU linker flag form.
func (d Directive) String() string {
	switch d.Kind {
	case DirectiveSearchPath:
		return "-L" + d.Path
	case DirectiveLinkLibrary:
		return "-l" + d.Name
	default:
		return fmt.Sprintf("Directive(%d)", uint8(d.Kind))
	}
}

// Stream is an ordered sequence of directives produced once per build and
// consumed once, strictly in sequence.
//
// Integration contract: the stream must be appended after all compiled-object
// inputs in the final link invocation, never before them.
type Stream []Directive

// LinkerArgs renders the stream as GNU linker arguments, in order.
func (s Stream) LinkerArgs() []string {
	args := make([]string, 0, len(s))
	for _, d := range s {
		args = append(args, d.String())
	}
	return args
}

// Libraries returns the library names referenced by the stream, in order.
func (s Stream) Libraries() []string {
	var names []string
	for _, d := range s {
		if d.Kind == DirectiveLinkLibrary {
			names = append(names, d.Name)
		}
	}
	return names
}

// Equal reports whether two streams are identical directive for directive.
func (s Stream) Equal(other Stream) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
