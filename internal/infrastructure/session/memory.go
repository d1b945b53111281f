// Package session provides an in-memory session store for deployments
// without Redis (the flat-file single-terminal setup) and for tests.
package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	username  string
	expiresAt time.Time
}

// MemoryStore keeps active sessions in process memory. Sessions do not
// survive a restart, which matches the original single-terminal behaviour.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (s *MemoryStore) Start(_ context.Context, tokenID, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = entry{username: username, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Active(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenID)
	return nil
}
