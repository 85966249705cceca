package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/identity"
	"github.com/retailops/backend/internal/domain/shared"
)

func seedUser(t *testing.T, repo *memUserRepo, name, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, email, password, identity.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), user))
	return user
}

func TestUserServiceUpdateOwnProfile(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := NewUserService(repo, zap.NewNop())
	user := seedUser(t, repo, "Dana", "dana@shop.test", "correct-horse")

	t.Run("changes the name and keeps the role", func(t *testing.T) {
		info, err := svc.UpdateOwnProfile(ctx, user.ID, "Dana K")
		require.NoError(t, err)
		assert.Equal(t, "Dana K", info.Name)
		assert.Equal(t, identity.RoleStaff, info.Role)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := svc.UpdateOwnProfile(ctx, user.ID, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), shared.ErrCodeValidation)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateOwnProfile(ctx, uuid.New(), "Nobody")
		assert.Error(t, err)
	})
}

func TestUserServiceChangePassword(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := NewUserService(repo, zap.NewNop())
	user := seedUser(t, repo, "Dana", "dana@shop.test", "correct-horse")

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "wrong-horse", "fresh-password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), shared.ErrCodeInvalidCredentials)
		assert.True(t, user.VerifyPassword("correct-horse"))
	})

	t.Run("too short replacement is rejected", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "correct-horse", "short")
		require.Error(t, err)
		assert.True(t, user.VerifyPassword("correct-horse"))
	})

	t.Run("valid change sticks", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "correct-horse", "fresh-password")
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, stored.VerifyPassword("fresh-password"))
		assert.False(t, stored.VerifyPassword("correct-horse"))
	})
}
