package velocut

import (
	"fmt"
	"strings"
)

// Target identifies the platform a binary is linked for, in GNU triple form:
// arch-vendor-os or arch-vendor-os-env, e.g. "x86_64-pc-windows-gnu".
type Target struct {
	Arch   string
	Vendor string
	OS     string
	Env    string
}

// ParseTarget parses a GNU target triple.
func ParseTarget(triple string) (Target, error) {
	parts := strings.Split(triple, "-")
	switch len(parts) {
	case 3:
		return Target{Arch: parts[0], Vendor: parts[1], OS: parts[2]}, nil
	case 4:
		return Target{Arch: parts[0], Vendor: parts[1], OS: parts[2], Env: parts[3]}, nil
	default:
		return Target{}, fmt.Errorf("velocut: invalid target triple %q", triple)
	}
}

// MustParseTarget is like ParseTarget but panics on malformed input.
// Intended for triples known at compile time.
func MustParseTarget(triple string) Target {
	t, err := ParseTarget(triple)
	if err != nil {
		panic(err)
	}
	return t
}

// String reassembles the triple.
func (t Target) String() string {
	s := t.Arch + "-" + t.Vendor + "-" + t.OS
	if t.Env != "" {
		s += "-" + t.Env
	}
	return s
}

// IsWindows reports whether the target links PE binaries.
func (t Target) IsWindows() bool {
	return t.OS == "windows"
}

// IsDarwin reports whether the target links Mach-O binaries.
func (t Target) IsDarwin() bool {
	return t.OS == "darwin" || t.OS == "macos"
}
