package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cart-sync/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store backed by a PostgreSQL table with one
// row per slot. Useful when the same cart profile is shared across
// devices behind a common database.
type postgresStore struct {
	pool   *pgxpool.Pool
	slot   string
	logger zerolog.Logger
}

// NewPostgresStore creates a PostgreSQL-backed snapshot store for the
// given slot name. It ensures the snapshot table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, slot string, logger zerolog.Logger) (Store, error) {
	s := &postgresStore{
		pool:   pool,
		slot:   slot,
		logger: logger.With().Str("store", "postgres").Str("slot", slot).Logger(),
	}

	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureSchema creates the snapshot table if it does not exist.
func (s *postgresStore) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS cart_snapshots (
			slot VARCHAR(100) PRIMARY KEY,
			state JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		s.logger.Error().Err(err).Msg("failed to create snapshot table")
		return fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return nil
}

// Load reads the snapshot row for the slot. A missing row or a state
// column that does not parse yields the zero-value cart state.
func (s *postgresStore) Load(ctx context.Context) (model.CartState, error) {
	query := `SELECT state FROM cart_snapshots WHERE slot = $1`

	var data []byte
	err := s.pool.QueryRow(ctx, query, s.slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().Msg("no snapshot row, starting from empty cart")
			return model.EmptyCartState(), nil
		}
		s.logger.Error().Err(err).Msg("failed to load snapshot")
		return model.EmptyCartState(), fmt.Errorf("failed to load snapshot: %w", err)
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt snapshot row, starting from empty cart")
		return model.EmptyCartState(), nil
	}

	if state.Items == nil {
		state.Items = []model.LineItem{}
	}

	return state, nil
}

// Save upserts the complete snapshot for the slot.
func (s *postgresStore) Save(ctx context.Context, state model.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
		INSERT INTO cart_snapshots (slot, state, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, s.slot, data, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Msg("failed to save snapshot")
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug().Int("items", len(state.Items)).Msg("snapshot persisted")

	return nil
}

// Close releases the store's reference to the pool. The pool itself is
// owned by the caller and closed at application shutdown.
func (s *postgresStore) Close() error {
	return nil
}
