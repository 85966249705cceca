package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/identity"
	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/infrastructure/auth"
)

// ============================================================================
// Fakes
// ============================================================================

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) Find(_ context.Context, _ shared.Filter) ([]*identity.User, error) {
	out := make([]*identity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type memOTPStore struct {
	codes map[string]string
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{codes: make(map[string]string)}
}

func otpKey(email string, purpose identity.OTPPurpose) string {
	return email + ":" + string(purpose)
}

func (s *memOTPStore) Put(_ context.Context, email string, purpose identity.OTPPurpose, code string, _ time.Duration) error {
	s.codes[otpKey(email, purpose)] = code
	return nil
}

func (s *memOTPStore) Consume(_ context.Context, email string, purpose identity.OTPPurpose, code string) (bool, error) {
	key := otpKey(email, purpose)
	stored, ok := s.codes[key]
	if !ok {
		return false, nil
	}
	delete(s.codes, key)
	return stored == code, nil
}

func (s *memOTPStore) Close() error { return nil }

type captureMailer struct {
	to      []string
	bodies  []string
	subject []string
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

// ============================================================================
// Fixture
// ============================================================================

type authFixture struct {
	svc    *AuthService
	repo   *memUserRepo
	otp    *memOTPStore
	mailer *captureMailer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	jwtSvc, err := auth.NewJWTService(auth.Config{
		AccessSecret:  "test-access",
		RefreshSecret: "test-refresh",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	repo := newMemUserRepo()
	otp := newMemOTPStore()
	mailer := &captureMailer{}
	return &authFixture{
		svc:    NewAuthService(repo, otp, jwtSvc, mailer, zap.NewNop()),
		repo:   repo,
		otp:    otp,
		mailer: mailer,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, password string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Test User", email, password, role)
	require.NoError(t, err)
	require.NoError(t, f.repo.Save(context.Background(), u))
	return u
}

// ============================================================================
// Tests
// ============================================================================

func TestAuthServiceSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue tokens", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleAdmin)

		result, err := f.svc.SignIn(ctx, "sara@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, identity.RoleAdmin, result.User.Role)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)

		_, err := f.svc.SignIn(ctx, "sara@example.com", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), shared.ErrCodeInvalidCredentials)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.SignIn(ctx, "nobody@example.com", "whatever1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), shared.ErrCodeInvalidCredentials)
	})

	t.Run("deactivated account rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)
		u.Deactivate()

		_, err := f.svc.SignIn(ctx, "sara@example.com", "s3cret-pass")
		assert.Error(t, err)
	})
}

func TestAuthServiceSignUp(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	info, err := f.svc.SignUp(ctx, SignUpInput{
		Name: "Sara", Email: "sara@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStaff, info.Role) // default role

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := f.svc.SignUp(ctx, SignUpInput{
			Name: "Other", Email: "sara@example.com", Password: "another-pass",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ALREADY_EXISTS")
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)

	signedIn, err := f.svc.SignIn(ctx, "sara@example.com", "s3cret-pass")
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, signedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, "garbage")
	assert.Error(t, err)
}

func TestAuthServiceOTPFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("send and verify login code", func(t *testing.T) {
		f := newAuthFixture(t)
		u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)

		require.NoError(t, f.svc.SendOTP(ctx, u.Email, identity.OTPPurposeLogin))
		require.Len(t, f.mailer.to, 1)
		code := f.otp.codes[otpKey(u.Email, identity.OTPPurposeLogin)]
		require.Len(t, code, identity.OTPCodeLength)
		assert.Contains(t, f.mailer.bodies[0], code)

		result, err := f.svc.VerifyOTP(ctx, u.Email, code)
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})

	t.Run("codes are single use", func(t *testing.T) {
		f := newAuthFixture(t)
		u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)
		require.NoError(t, f.svc.SendOTP(ctx, u.Email, identity.OTPPurposeLogin))
		code := f.otp.codes[otpKey(u.Email, identity.OTPPurposeLogin)]

		_, err := f.svc.VerifyOTP(ctx, u.Email, code)
		require.NoError(t, err)

		_, err = f.svc.VerifyOTP(ctx, u.Email, code)
		assert.Error(t, err)
	})

	t.Run("wrong code burns the stored one", func(t *testing.T) {
		f := newAuthFixture(t)
		u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)
		require.NoError(t, f.svc.SendOTP(ctx, u.Email, identity.OTPPurposeLogin))
		code := f.otp.codes[otpKey(u.Email, identity.OTPPurposeLogin)]

		_, err := f.svc.VerifyOTP(ctx, u.Email, "000000")
		if code == "000000" {
			t.Skip("generated code collided with the guess")
		}
		require.Error(t, err)

		// The real code no longer works either
		_, err = f.svc.VerifyOTP(ctx, u.Email, code)
		assert.Error(t, err)
	})

	t.Run("unknown email is silent on send", func(t *testing.T) {
		f := newAuthFixture(t)
		assert.NoError(t, f.svc.SendOTP(ctx, "nobody@example.com", identity.OTPPurposeLogin))
		assert.Empty(t, f.mailer.to)
	})
}

func TestAuthServicePasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)

	require.NoError(t, f.svc.ForgotPassword(ctx, u.Email))
	code := f.otp.codes[otpKey(u.Email, identity.OTPPurposePasswordReset)]
	require.NotEmpty(t, code)

	t.Run("wrong code rejected", func(t *testing.T) {
		err := f.svc.ResetPassword(ctx, u.Email, "badcode", "new-password")
		assert.Error(t, err)
	})

	t.Run("valid code resets", func(t *testing.T) {
		// Re-send since the wrong attempt consumed the code
		require.NoError(t, f.svc.ForgotPassword(ctx, u.Email))
		code = f.otp.codes[otpKey(u.Email, identity.OTPPurposePasswordReset)]

		require.NoError(t, f.svc.ResetPassword(ctx, u.Email, code, "new-password"))

		_, err := f.svc.SignIn(ctx, u.Email, "new-password")
		assert.NoError(t, err)
		_, err = f.svc.SignIn(ctx, u.Email, "s3cret-pass")
		assert.Error(t, err)
	})
}

func TestAuthServiceEmailVerification(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	u := f.seedUser(t, "sara@example.com", "s3cret-pass", identity.RoleStaff)
	require.False(t, u.EmailVerified)

	require.NoError(t, f.svc.RequestEmailVerification(ctx, u.Email))
	code := f.otp.codes[otpKey(u.Email, identity.OTPPurposeEmailVerification)]

	require.NoError(t, f.svc.VerifyEmail(ctx, u.Email, code))

	stored, err := f.repo.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)
}
