package prefs

import (
	"context"
	"sync"

	"github.com/creastat/assistant"
)

// MemoryStore implements Store using an in-memory map.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a new in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.values == nil {
		return "", assistant.ErrClosed
	}
	return s.values[key], nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		return assistant.ErrClosed
	}
	s.values[key] = value
	return nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		return assistant.ErrClosed
	}
	delete(s.values, key)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
