package auth

import (
	"testing"
	"time"

	"utsavdarshan/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{AccessSecret: "secret", AccessExpiry: time.Hour, Issuer: "utsavdarshan"}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, "google-123", "a@example.com", "ADMIN")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, "google-123", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAccessTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, "google-123", "a@example.com", "VISITOR")
	require.NoError(t, err)

	other := testJWTConfig()
	other.AccessSecret = "different"
	_, err = ParseAccessToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := testJWTConfig()
	expired.AccessExpiry = -time.Minute
	old, err := GenerateAccessToken(expired, "google-123", "a@example.com", "VISITOR")
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
