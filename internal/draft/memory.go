package draft

import (
	"context"
	"sync"
)

// MemoryStore is an in-process draft cache, used in tests and when no Redis
// address is configured. Drafts do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryStore returns an empty in-memory draft cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Draft)}
}

// Get fetches the draft for a session.
func (s *MemoryStore) Get(_ context.Context, sessionID string) (Draft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[sessionID]
	return d, ok, nil
}

// Set stores the draft for a session.
func (s *MemoryStore) Set(_ context.Context, sessionID string, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = d
	return nil
}

// Clear removes the draft for a session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}
