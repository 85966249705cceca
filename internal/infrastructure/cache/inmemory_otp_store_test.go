package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/backend/internal/domain/identity"
)

func TestInMemoryOTPStore(t *testing.T) {
	store := NewInMemoryOTPStore()
	defer store.Close()

	ctx := context.Background()
	email := "sara@example.com"

	t.Run("consume matches the stored code", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "123456", time.Minute))

		ok, err := store.Consume(ctx, email, identity.OTPPurposeLogin, "123456")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("codes are single use", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "123456", time.Minute))

		ok, err := store.Consume(ctx, email, identity.OTPPurposeLogin, "123456")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Consume(ctx, email, identity.OTPPurposeLogin, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong code burns the stored one", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "123456", time.Minute))

		ok, err := store.Consume(ctx, email, identity.OTPPurposeLogin, "654321")
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = store.Consume(ctx, email, identity.OTPPurposeLogin, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("purposes are isolated", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "111111", time.Minute))
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposePasswordReset, "222222", time.Minute))

		ok, err := store.Consume(ctx, email, identity.OTPPurposePasswordReset, "111111")
		require.NoError(t, err)
		assert.False(t, ok, "login code must not verify a password reset")

		ok, err = store.Consume(ctx, email, identity.OTPPurposeLogin, "111111")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired codes do not verify", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "123456", 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		ok, err := store.Consume(ctx, email, identity.OTPPurposeLogin, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("a new put replaces the previous code", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "111111", time.Minute))
		require.NoError(t, store.Put(ctx, email, identity.OTPPurposeLogin, "222222", time.Minute))

		ok, err := store.Consume(ctx, email, identity.OTPPurposeLogin, "111111")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
