package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cart-sync/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisStore implements Store with the snapshot held under a single
// Redis key. An optional TTL lets abandoned carts expire on their own.
type redisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed snapshot store for the given
// slot name. A zero ttl means the snapshot never expires.
func NewRedisStore(client *redis.Client, slot string, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		client: client,
		key:    "cart-sync:snapshot:" + slot,
		ttl:    ttl,
		logger: logger.With().Str("store", "redis").Str("slot", slot).Logger(),
	}
}

// Load reads the snapshot key. A missing key or a value that does not
// parse yields the zero-value cart state.
func (s *redisStore) Load(ctx context.Context) (model.CartState, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.Debug().Msg("no snapshot key, starting from empty cart")
			return model.EmptyCartState(), nil
		}
		s.logger.Error().Err(err).Msg("failed to load snapshot")
		return model.EmptyCartState(), fmt.Errorf("failed to load snapshot: %w", err)
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn().Err(err).Msg("corrupt snapshot value, starting from empty cart")
		return model.EmptyCartState(), nil
	}

	if state.Items == nil {
		state.Items = []model.LineItem{}
	}

	return state, nil
}

// Save replaces the snapshot key with the complete state.
func (s *redisStore) Save(ctx context.Context, state model.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to save snapshot")
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug().Int("items", len(state.Items)).Msg("snapshot persisted")

	return nil
}

// Close closes the underlying Redis client.
func (s *redisStore) Close() error {
	return s.client.Close()
}
