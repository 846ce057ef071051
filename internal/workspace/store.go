package workspace

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store maps session ids to workspaces. Nothing is persisted; a restart
// starts everyone over.
type Store struct {
	mu    sync.Mutex
	items map[string]*Workspace
	now   func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*Workspace), now: time.Now}
}

// Get returns the workspace for id and marks it as used.
func (s *Store) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	w, ok := s.items[id]
	s.mu.Unlock()
	if ok {
		w.touch(s.now())
	}
	return w, ok
}

// Create registers a new workspace under a fresh random id.
func (s *Store) Create() (string, *Workspace) {
	id := uuid.NewString()
	w := New()
	w.touched = s.now()

	s.mu.Lock()
	s.items[id] = w
	s.mu.Unlock()
	return id, w
}

// GetOrCreate returns the workspace for id, creating one under a new id if
// id is unknown. created reports whether a new one was made.
func (s *Store) GetOrCreate(id string) (string, *Workspace, bool) {
	if id != "" {
		if w, ok := s.Get(id); ok {
			return id, w, false
		}
	}
	newID, w := s.Create()
	return newID, w, true
}

// Prune drops workspaces unused for longer than maxIdle and returns how
// many were removed.
func (s *Store) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, w := range s.items {
		if w.idleSince().Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
