package view

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for single-process use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	view      View
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store.
// A non-positive TTL means [DefaultTTL].
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get retrieves the view for a session.
// Missing and expired entries read as the empty view.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sessionID]
	if !ok || time.Now().After(entry.expiresAt) {
		return Empty(), nil
	}
	return entry.view, nil
}

// Put replaces the view for a session.
func (s *MemoryStore) Put(ctx context.Context, sessionID string, v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		view:      v,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Reset restores the empty view for a session.
// Dropping the entry is enough: Get reads absence as Empty().
func (s *MemoryStore) Reset(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Len reports how many sessions currently hold a view.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
