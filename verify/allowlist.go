package verify

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllowList is the set of dynamic-library names acceptable in an otherwise
// statically-linked binary. PE import names are matched case-insensitively;
// ELF and Mach-O names are case-sensitive.
type AllowList struct {
	fold  bool
	names map[string]struct{}
}

// NewAllowList builds an allow-list. fold selects case-insensitive
// matching.
func NewAllowList(fold bool, names ...string) AllowList {
	a := AllowList{
		fold:  fold,
		names: make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		a.names[a.key(n)] = struct{}{}
	}
	return a
}

func (a AllowList) key(name string) string {
	if a.fold {
		return strings.ToLower(name)
	}
	return name
}

// Contains reports whether name is acceptable.
func (a AllowList) Contains(name string) bool {
	_, ok := a.names[a.key(name)]
	return ok
}

// Len returns the number of allowed names.
func (a AllowList) Len() int {
	return len(a.names)
}

// Names returns the allowed names in sorted, canonical form.
func (a AllowList) Names() []string {
	out := make([]string, 0, len(a.names))
	for n := range a.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type allowListDecl struct {
	CaseInsensitive bool     `yaml:"case-insensitive"`
	Imports         []string `yaml:"imports"`
}

// LoadAllowList reads an allow-list declaration file:
//
//	case-insensitive: true
//	imports:
//	  - KERNEL32.dll
//	  - USER32.dll
//	  - ntdll.dll
func LoadAllowList(path string) (AllowList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AllowList{}, fmt.Errorf("verify: read %s: %w", path, err)
	}
	return ParseAllowList(data)
}

// ParseAllowList builds an allow-list from YAML declarations.
func ParseAllowList(data []byte) (AllowList, error) {
	var decl allowListDecl
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return AllowList{}, fmt.Errorf("verify: unmarshal allow-list: %w", err)
	}
	return NewAllowList(decl.CaseInsensitive, decl.Imports...), nil
}
