package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "test",
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService(Config{})
	assert.Error(t, err)
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(t)
	input := TokenInput{UserID: uuid.New(), Email: "sara@example.com", Role: "admin"}

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.GenerateTokenPair(TokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	// A refresh token must not pass as an access token
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	svc, err := NewJWTService(Config{
		AccessSecret:  "s1",
		RefreshSecret: "s2",
		AccessTTL:     -time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)
	// Negative TTL falls back to the default, so force expiry by signing
	// with a service whose clock budget already passed.
	svc.config.AccessTTL = -time.Minute

	pair, err := svc.GenerateTokenPair(TokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageToken(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
