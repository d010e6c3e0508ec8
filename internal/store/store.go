package store

import (
	"context"

	"cart-sync/internal/model"
)

// Store defines the interface for the persisted cart snapshot slot.
// Each slot holds one serialized CartState; every write replaces the
// snapshot wholesale, there are no partial updates.
type Store interface {
	// Load reads the persisted snapshot. An absent or unparsable
	// snapshot yields the zero-value cart state, not an error; errors
	// are reserved for genuine I/O failures.
	Load(ctx context.Context) (model.CartState, error)

	// Save replaces the slot with a complete snapshot.
	Save(ctx context.Context, state model.CartState) error

	// Close releases resources held by the store.
	Close() error
}
