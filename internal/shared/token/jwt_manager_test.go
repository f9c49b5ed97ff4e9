package token

import (
	"testing"
	"time"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "carwash-cms-api-test"},
		JWT: config.JWTConfig{
			Secret:        "test-secret-key-for-testing-only",
			Expiry:        expiry,
			RefreshExpiry: 24 * time.Hour,
		},
	})
}

func TestJWTManager_AccessToken(t *testing.T) {
	m := newTestManager(time.Hour)

	signed, err := m.GenerateAccessToken("7", "op@example.com")
	require.NoError(t, err)

	claims, err := ValidateAccessToken(m, signed)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.OperatorID)
	assert.Equal(t, "op@example.com", claims.Email)
	assert.Equal(t, ACCESS, claims.TokenType)
}

func TestJWTManager_RefreshTokenIsNotAccess(t *testing.T) {
	m := newTestManager(time.Hour)

	signed, err := m.GenerateRefreshToken("7", "op@example.com")
	require.NoError(t, err)

	_, err = ValidateAccessToken(m, signed)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestManager(-time.Minute)

	signed, err := m.GenerateAccessToken("7", "op@example.com")
	require.NoError(t, err)

	_, err = m.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	signed, err := newTestManager(time.Hour).GenerateAccessToken("7", "op@example.com")
	require.NoError(t, err)

	other := newTestManager(time.Hour)
	other.secret = []byte("another-secret")

	_, err = other.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
