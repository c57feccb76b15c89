package index

import (
	"sort"
	"sync"
)

// Store is the shared in-memory collection of entries, keyed by path.
// It uses a map for O(1) upsert/remove and a sorted path slice so that
// snapshots iterate in a deterministic order.
//
// Concurrency: many readers may take snapshots concurrently; writers
// (scanner bulk loads, watcher patches) are serialized by the write lock.
// Every mutation is a single atomic version transition — a snapshot never
// observes a half-applied upsert or a partially cleared store.
type Store struct {
	mu          sync.RWMutex
	entries     map[string]Entry
	sortedPaths []string // sorted for consistent snapshot order
}

// NewStore creates a new empty store.
func NewStore() *Store {
	return &Store{
		entries:     make(map[string]Entry),
		sortedPaths: make([]string, 0),
	}
}

// Snapshot returns a point-in-time copy of all entries in sorted path
// order. The returned slice is owned by the caller; later mutations of
// the store do not affect it.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.sortedPaths))
	for _, path := range s.sortedPaths {
		out = append(out, s.entries[path])
	}
	return out
}

// ReplaceAll atomically discards the current contents and installs
// entries as the new complete state. Later duplicates of the same path
// win, so the uniqueness invariant holds even for sloppy input.
func (s *Store) ReplaceAll(entries []Entry) {
	byPath := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byPath[e.Path] = e
	}
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	s.mu.Lock()
	s.entries = byPath
	s.sortedPaths = paths
	s.mu.Unlock()
}

// Upsert inserts an entry, replacing any existing entry with the same
// path in the same atomic step.
func (s *Store) Upsert(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.entries[entry.Path]
	s.entries[entry.Path] = entry

	if !exists {
		i := sort.SearchStrings(s.sortedPaths, entry.Path)
		s.sortedPaths = append(s.sortedPaths, "")
		copy(s.sortedPaths[i+1:], s.sortedPaths[i:])
		s.sortedPaths[i] = entry.Path
	}
}

// Remove deletes the entry with the given path. Removing a path that is
// not present is a no-op.
func (s *Store) Remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[path]; !exists {
		return
	}

	delete(s.entries, path)

	i := sort.SearchStrings(s.sortedPaths, path)
	if i < len(s.sortedPaths) && s.sortedPaths[i] == path {
		s.sortedPaths = append(s.sortedPaths[:i], s.sortedPaths[i+1:]...)
	}
}

// Extend appends entries without clearing existing ones. Used to merge
// application entries with filesystem scan results; the caller is
// responsible for path uniqueness across the merge sources, though an
// entry whose path is already present simply replaces the old one.
func (s *Store) Extend(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resort := false
	for _, e := range entries {
		if _, exists := s.entries[e.Path]; !exists {
			s.sortedPaths = append(s.sortedPaths, e.Path)
			resort = true
		}
		s.entries[e.Path] = e
	}
	if resort {
		sort.Strings(s.sortedPaths)
	}
}

// Len returns the number of entries in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CountByKind returns the number of entries per kind.
func (s *Store) CountByKind() map[Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Kind]int)
	for _, e := range s.entries {
		counts[e.Kind]++
	}
	return counts
}
