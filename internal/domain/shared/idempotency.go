package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so that a retried submission
// does not create a second aggregate.
type IdempotencyStore interface {
	// MarkProcessed marks a key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already seen.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been seen
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases store resources
	Close() error
}

// IdempotencyConfig holds configuration for submission idempotency
type IdempotencyConfig struct {
	// TTL is how long a key blocks replays. Default: 24 hours.
	TTL time.Duration

	// Enabled toggles idempotency checking. Default: true.
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
