package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("Sara", "sara@example.com", "s3cret-pass", RoleStaff)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		u := createTestUser(t)
		assert.True(t, u.Active)
		assert.False(t, u.EmailVerified)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	})

	t.Run("email is normalized", func(t *testing.T) {
		u, err := NewUser("Sara", "  Sara@Example.COM ", "s3cret-pass", RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "sara@example.com", u.Email)
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
	}{
		{"missing name", "", "a@b.com", "longenough", RoleStaff},
		{"bad email", "Sara", "not-an-email", "longenough", RoleStaff},
		{"short password", "Sara", "a@b.com", "short", RoleStaff},
		{"bad role", "Sara", "a@b.com", "longenough", Role("root")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestUserPassword(t *testing.T) {
	u := createTestUser(t)

	t.Run("verify", func(t *testing.T) {
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("change requires old password", func(t *testing.T) {
		err := u.ChangePassword("wrong", "another-pass")
		assert.Error(t, err)

		require.NoError(t, u.ChangePassword("s3cret-pass", "another-pass"))
		assert.True(t, u.VerifyPassword("another-pass"))
	})

	t.Run("set rejects short passwords", func(t *testing.T) {
		assert.Error(t, u.SetPassword("short"))
	})
}

func TestUserLifecycle(t *testing.T) {
	u := createTestUser(t)

	u.Deactivate()
	assert.False(t, u.CanLogin())

	u.Activate()
	assert.True(t, u.CanLogin())

	u.VerifyEmail()
	assert.True(t, u.EmailVerified)
}

func TestUserRoles(t *testing.T) {
	u := createTestUser(t)
	assert.False(t, u.IsAdmin())

	require.NoError(t, u.UpdateProfile("Sara", RoleAdmin))
	assert.True(t, u.IsAdmin())

	assert.Error(t, u.UpdateProfile("", RoleAdmin))
	assert.Error(t, u.UpdateProfile("Sara", Role("superuser")))
}

func TestGenerateOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		assert.Len(t, code, OTPCodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
		seen[code] = true
	}
	// 20 draws from a million values should not all collide
	assert.Greater(t, len(seen), 1)
}
