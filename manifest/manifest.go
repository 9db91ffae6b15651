package manifest

import (
	"sync"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
)

// Manifest is the ordered set of library declarations for one build.
// Thread-safe.
type Manifest struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{
		index: make(map[string]int),
	}
}

// Register adds an entry. Declaration order is preserved and is part of the
// manifest's meaning. Registering the same name twice fails fast.
func (m *Manifest) Register(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.index[e.Name]; exists {
		return errors.DuplicateEntry(e.Name)
	}
	m.index[e.Name] = len(m.entries)
	m.entries = append(m.entries, e)
	return nil
}

// MustRegister is like Register but panics on duplicates. Intended for
// static declarations known at compile time.
func (m *Manifest) MustRegister(e Entry) {
	if err := m.Register(e); err != nil {
		panic(err)
	}
}

// Lookup returns the entry registered under name.
func (m *Manifest) Lookup(name string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[name]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Entries returns every registered entry in declaration order.
func (m *Manifest) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// EnabledEntries returns the entries that participate in a build for the
// given target: enabled, platform-matching, ordered by group precedence and
// declaration order within each group. The result is deterministic for an
// identical manifest and target.
func (m *Manifest) EnabledEntries(t velocut.Target) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for g := GroupPrimary; g <= GroupRuntime; g++ {
		for _, e := range m.entries {
			if e.Group != g || !e.Enabled || !e.Matches(t) {
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of registered entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
