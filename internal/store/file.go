package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cart-sync/internal/model"

	"github.com/rs/zerolog"
)

// fileStore implements Store with a JSON snapshot file on local disk.
// This is the default persistence slot for a single-device cart.
type fileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed snapshot store at the given path.
// The parent directory is created if it does not exist.
func NewFileStore(path string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	return &fileStore{
		path:   path,
		logger: logger.With().Str("store", "file").Str("path", path).Logger(),
	}, nil
}

// Load reads the snapshot file. A missing file or one that does not
// parse as a cart state yields the zero-value state.
func (s *fileStore) Load(ctx context.Context) (model.CartState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Msg("no snapshot file, starting from empty cart")
			return model.EmptyCartState(), nil
		}
		return model.EmptyCartState(), fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt snapshots are discarded rather than surfaced; the
		// slot is best-effort and an empty cart is always valid.
		s.logger.Warn().Err(err).Msg("corrupt snapshot file, starting from empty cart")
		return model.EmptyCartState(), nil
	}

	if state.Items == nil {
		state.Items = []model.LineItem{}
	}

	return state, nil
}

// Save serializes the snapshot and writes it atomically via a
// temporary file and rename, so a crash mid-write never leaves a
// half-written snapshot behind.
func (s *fileStore) Save(ctx context.Context, state model.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	s.logger.Debug().Int("items", len(state.Items)).Msg("snapshot persisted")

	return nil
}

// Close releases resources held by the store.
func (s *fileStore) Close() error {
	return nil
}
