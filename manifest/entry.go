package manifest

import (
	"fmt"
	"path/filepath"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
)

// Group fixes the precedence a library links in. Lower groups are emitted
// first; the linker's single left-to-right pass means dependents must come
// before their dependencies.
type Group int

const (
	// GroupPrimary holds the libraries whose symbols the application itself
	// references (the FFmpeg component libraries).
	GroupPrimary Group = iota
	// GroupCodec holds external codec libraries the primary group depends on.
	GroupCodec
	// GroupSystem holds platform system libraries.
	GroupSystem
	// GroupRuntime holds compiler-shipped runtime archives whose location
	// must be probed from the active toolchain.
	GroupRuntime
)

var groupNames = map[Group]string{
	GroupPrimary: "primary",
	GroupCodec:   "codec",
	GroupSystem:  "system",
	GroupRuntime: "runtime",
}

// String implements fmt.Stringer.
func (g Group) String() string {
	if s, ok := groupNames[g]; ok {
		return s
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

// ParseGroup parses a group name as written in manifest files.
func ParseGroup(s string) (Group, error) {
	for g, name := range groupNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("manifest: invalid group %q", s)
}

// Entry declares one external library dependency. Immutable once registered.
type Entry struct {
	// Name is the logical library name, without lib prefix or extension.
	Name string
	// Mode selects the on-disk representation to link.
	Mode velocut.LinkMode
	// Group fixes emission precedence.
	Group Group
	// Enabled entries participate in the build; disabled ones are kept for
	// documentation but never emitted.
	Enabled bool
	// Dir is an optional non-default search path holding this library
	// (a custom install prefix). Empty means the linker's default paths.
	Dir string
	// Platforms scopes the entry to matching target triples. Each element is
	// either a bare OS name ("windows") or a glob over the full triple
	// ("x86_64-*-windows-gnu"). Empty means all platforms.
	Platforms []string
}

// Matches reports whether the entry applies to the given target.
func (e Entry) Matches(t velocut.Target) bool {
	if len(e.Platforms) == 0 {
		return true
	}
	triple := t.String()
	for _, p := range e.Platforms {
		if p == t.OS {
			return true
		}
		if ok, err := filepath.Match(p, triple); err == nil && ok {
			return true
		}
	}
	return false
}
