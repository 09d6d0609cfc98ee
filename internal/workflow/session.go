package workflow

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions holds in-progress wizards keyed by draft id. Drafts live in
// memory only: a failed save keeps the wizard state intact so the user can
// retry without re-entering data, and abandoning the browser abandons the
// draft. Concurrent edits to the same draft are out of scope; the registry
// is locked only to be safe under the HTTP server's goroutines.
type Sessions struct {
	mu     sync.Mutex
	drafts map[string]*Wizard
}

func NewSessions() *Sessions {
	return &Sessions{drafts: make(map[string]*Wizard)}
}

// Start registers a fresh wizard and returns its draft id.
func (s *Sessions) Start() (string, *Wizard) {
	w := New()
	id := uuid.NewString()
	s.mu.Lock()
	s.drafts[id] = w
	s.mu.Unlock()
	return id, w
}

// StartFrom registers a wizard seeded from a stored document (edit-existing).
func (s *Sessions) StartFrom(w *Wizard) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.drafts[id] = w
	s.mu.Unlock()
	return id
}

// Get returns the wizard for a draft id.
func (s *Sessions) Get(id string) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.drafts[id]
	return w, ok
}

// End discards a draft, typically after a successful finalize.
func (s *Sessions) End(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}
