package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailops/backend/internal/domain/identity"
)

const otpKeyPrefix = "retail:otp:"

// RedisOTPStore keeps one-time codes in Redis with their TTL. A code is
// removed on the first verification attempt, right or wrong, so it can
// never be brute-forced or replayed.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates a Redis-backed OTP store on an existing client
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

func redisOTPKey(email string, purpose identity.OTPPurpose) string {
	return fmt.Sprintf("%s%s:%s", otpKeyPrefix, purpose, email)
}

// Put stores a code for the email and purpose, replacing any previous one
func (s *RedisOTPStore) Put(ctx context.Context, email string, purpose identity.OTPPurpose, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisOTPKey(email, purpose), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp code: %w", err)
	}
	return nil
}

// Consume removes the stored code and reports whether it matched. GETDEL
// makes the read-and-burn atomic.
func (s *RedisOTPStore) Consume(ctx context.Context, email string, purpose identity.OTPPurpose, code string) (bool, error) {
	stored, err := s.client.GetDel(ctx, redisOTPKey(email, purpose)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume otp code: %w", err)
	}
	return stored == code, nil
}

// Close closes the Redis client
func (s *RedisOTPStore) Close() error {
	return s.client.Close()
}

var _ identity.OTPStore = (*RedisOTPStore)(nil)
