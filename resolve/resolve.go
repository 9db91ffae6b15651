package resolve

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/manifest"
)

// UnlinkedSuffix is appended to import stubs moved out of resolution.
// The rename keeps the stub recoverable; nothing resolves *.unlinked.
const UnlinkedSuffix = ".unlinked"

// State describes a directory tree's disambiguation state.
type State int

const (
	// StateClean means no static entry has a conflicting import stub.
	StateClean State = iota
	// StateConflicted means at least one static entry has both a true
	// archive and an import stub reachable.
	StateConflicted
	// StateResolved means conflicts were found and repaired.
	StateResolved
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateConflicted:
		return "conflicted"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Repair records one stub moved out of resolution.
type Repair struct {
	Library string
	From    string
	To      string
}

// Resolver repairs archive-vs-stub ambiguity in library search directories.
type Resolver struct {
	suffix string
}

// New creates a Resolver using UnlinkedSuffix.
func New() *Resolver {
	return &Resolver{suffix: UnlinkedSuffix}
}

// stubNames returns the filenames that resolve as import stubs for name.
func stubNames(name string) []string {
	return []string{
		"lib" + name + ".dll.a",
		name + ".dll.a",
	}
}

// archiveName returns the true-archive filename for name.
func archiveName(name string) string {
	return "lib" + name + ".a"
}

// searchDirs combines the build's search paths with an entry's own install
// prefix, deduplicated, order preserved.
func searchDirs(dirs []string, e manifest.Entry) []string {
	out := make([]string, 0, len(dirs)+1)
	seen := make(map[string]bool, len(dirs)+1)
	for _, d := range dirs {
		if d != "" && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	if e.Dir != "" && !seen[e.Dir] {
		out = append(out, e.Dir)
	}
	return out
}

// Scan inspects the search directories without mutating anything and
// reports whether any enabled static entry is ambiguous.
func (r *Resolver) Scan(m *manifest.Manifest, target velocut.Target, dirs []string) (State, error) {
	state := StateClean
	for _, e := range m.EnabledEntries(target) {
		if e.Mode != velocut.ModeStatic {
			continue
		}
		for _, dir := range searchDirs(dirs, e) {
			conflicted, err := r.scanEntry(dir, e)
			if err != nil {
				return state, err
			}
			if conflicted {
				state = StateConflicted
			}
		}
	}
	return state, nil
}

func (r *Resolver) scanEntry(dir string, e manifest.Entry) (bool, error) {
	archive := fileExists(filepath.Join(dir, archiveName(e.Name)))
	for _, stub := range stubNames(e.Name) {
		path := filepath.Join(dir, stub)
		if !fileExists(path) {
			continue
		}
		if !archive {
			return false, errors.New(errors.PhaseResolve, errors.KindAmbiguousLinkTarget).
				Library(e.Name).
				File(path).
				Detail("only an import stub is present; static linkage is impossible").
				Build()
		}
		return true, nil
	}
	return false, nil
}

// Resolve repairs every conflict Scan would report: each import stub that
// shadows a true archive is renamed aside. Only stubs are touched, never
// archives. Returns the repairs performed; an already-resolved tree yields
// none.
func (r *Resolver) Resolve(m *manifest.Manifest, target velocut.Target, dirs []string) ([]Repair, error) {
	var repairs []Repair
	for _, e := range m.EnabledEntries(target) {
		if e.Mode != velocut.ModeStatic {
			continue
		}
		for _, dir := range searchDirs(dirs, e) {
			rs, err := r.resolveEntry(dir, e)
			if err != nil {
				return repairs, err
			}
			repairs = append(repairs, rs...)
		}
	}
	return repairs, nil
}

func (r *Resolver) resolveEntry(dir string, e manifest.Entry) ([]Repair, error) {
	archive := fileExists(filepath.Join(dir, archiveName(e.Name)))

	var repairs []Repair
	for _, stub := range stubNames(e.Name) {
		from := filepath.Join(dir, stub)
		if !fileExists(from) {
			continue
		}
		if !archive {
			return repairs, errors.New(errors.PhaseResolve, errors.KindAmbiguousLinkTarget).
				Library(e.Name).
				File(from).
				Detail("only an import stub is present; static linkage is impossible").
				Build()
		}

		to := from + r.suffix
		if err := os.Rename(from, to); err != nil {
			return repairs, errors.AmbiguousLinkTarget(e.Name, from, err)
		}
		Logger().Info("moved import stub out of resolution",
			zap.String("library", e.Name),
			zap.String("from", from),
			zap.String("to", to))
		repairs = append(repairs, Repair{Library: e.Name, From: from, To: to})
	}
	return repairs, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
