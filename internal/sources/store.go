package sources

import "sync"

// Store holds the most recently committed snapshot. Writers replace the
// whole map, readers get the current map as-is; neither side ever sees a
// half-updated cycle, so no per-entry locking is needed.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Swap(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Load returns the current snapshot; nil until the first commit. Callers
// must treat it as read-only.
func (s *Store) Load() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
