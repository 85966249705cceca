package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/identity"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/config"
)

// Stores bundles the cache-backed stores used by the application
type Stores struct {
	OTP         identity.OTPStore
	Idempotency shared.IdempotencyStore

	client *redis.Client
}

// NewStores builds the OTP and idempotency stores. With Redis enabled both
// stores share one client; otherwise the in-memory implementations are used.
func NewStores(cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, using in-memory stores")
		return &Stores{
			OTP:         NewInMemoryOTPStore(),
			Idempotency: NewInMemoryIdempotencyStore(),
		}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
	return &Stores{
		OTP:         NewRedisOTPStore(client),
		Idempotency: NewRedisIdempotencyStore(client),
		client:      client,
	}, nil
}

// Close releases the stores and the shared Redis client
func (s *Stores) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	var firstErr error
	if err := s.OTP.Close(); err != nil {
		firstErr = err
	}
	if err := s.Idempotency.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
