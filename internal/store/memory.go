package store

import (
	"context"
	"sync"

	"cart-sync/internal/model"
)

// memoryStore implements Store with an in-process snapshot. Used when
// persistence is disabled and as the default store in tests.
type memoryStore struct {
	mu       sync.RWMutex
	snapshot model.CartState
	loaded   bool
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

// Load returns the last saved snapshot, or the zero-value cart state
// if nothing has been saved yet.
func (s *memoryStore) Load(ctx context.Context) (model.CartState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.EmptyCartState(), nil
	}
	return s.snapshot.Clone(), nil
}

// Save replaces the in-memory snapshot.
func (s *memoryStore) Save(ctx context.Context, state model.CartState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = state.Clone()
	s.loaded = true
	return nil
}

// Close releases resources held by the store.
func (s *memoryStore) Close() error {
	return nil
}
