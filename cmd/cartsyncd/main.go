package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cart-sync/internal/config"
	"cart-sync/internal/database"
	"cart-sync/internal/engine"
	"cart-sync/internal/gateway"
	"cart-sync/internal/handler"
	"cart-sync/internal/router"
	"cart-sync/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting cart-sync daemon")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the snapshot store for the configured backend
	snapshotStore, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	defer cleanup()

	// Initialize remote gateway and reconciliation engine
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second,
	}
	remoteGateway := gateway.NewHTTPGateway(cfg.Remote.BaseURL, httpClient, logger)
	cartEngine := engine.NewCartEngine(remoteGateway, snapshotStore, logger)

	// Initialize HTTP facade
	cartHandler := handler.NewCartHandler(cartEngine, logger)
	mux := router.New(cartHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("remote", cfg.Remote.BaseURL).
			Str("store_backend", cfg.Store.Backend).
			Msg("cart facade started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newStore builds the snapshot store selected by the configuration and
// returns it alongside a cleanup function for any backing connections.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logger.Info().Msg("persistence disabled, using in-memory snapshot store")
		return store.NewMemoryStore(), func() {}, nil

	case config.StoreBackendFile:
		fileStore, err := store.NewFileStore(cfg.Store.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, func() {}, nil

	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		pgStore, err := store.NewPostgresStore(ctx, pool, cfg.Store.Slot, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgStore, pool.Close, nil

	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		redisStore := store.NewRedisStore(client, cfg.Store.Slot, ttl, logger)
		return redisStore, func() { _ = redisStore.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
