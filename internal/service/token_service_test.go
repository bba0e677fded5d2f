package service

import (
	"testing"
	"time"

	"study-track/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.CreateAccessToken("user1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
}

func TestTokenService_RefreshTokenType(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.CreateRefreshToken("user1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := NewTokenService(testAuthConfig())
	token, err := svc.CreateAccessToken("user1")
	require.NoError(t, err)

	other := NewTokenService(config.AuthConfig{JWTSecret: "different", AccessTokenTTL: time.Minute})
	claims, err := other.ValidateToken(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: -time.Minute,
	})

	token, err := svc.CreateAccessToken("user1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	claims, err := svc.ValidateToken("not-a-jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
