package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTokenGenerator() *TokenGenerator {
	return NewTokenGenerator("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestNewTokenGenerator(t *testing.T) {
	tg := setupTokenGenerator()

	assert.NotNil(t, tg)
	assert.Equal(t, "test-secret", tg.secret)
	assert.Equal(t, 15*time.Minute, tg.accessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, tg.refreshTokenExpiry)
}

func TestTokenGenerator_GenerateTokens(t *testing.T) {
	tg := setupTokenGenerator()

	accessToken, refreshToken, err := tg.GenerateTokens("user@example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)
}

func TestTokenGenerator_ValidateAccessToken(t *testing.T) {
	tg := setupTokenGenerator()

	accessToken, _, err := tg.GenerateTokens("user@example.com")
	require.NoError(t, err)

	email, err := tg.ValidateAccessToken(accessToken)

	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestTokenGenerator_ValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	tg := setupTokenGenerator()

	_, refreshToken, err := tg.GenerateTokens("user@example.com")
	require.NoError(t, err)

	email, err := tg.ValidateAccessToken(refreshToken)

	assert.Error(t, err)
	assert.Empty(t, email)
}

func TestTokenGenerator_ValidateAccessToken_WrongSecret(t *testing.T) {
	tg := setupTokenGenerator()
	other := NewTokenGenerator("other-secret", 15*time.Minute, 7*24*time.Hour)

	accessToken, _, err := tg.GenerateTokens("user@example.com")
	require.NoError(t, err)

	email, err := other.ValidateAccessToken(accessToken)

	assert.Error(t, err)
	assert.Empty(t, email)
}

func TestTokenGenerator_ValidateAccessToken_Expired(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute, 7*24*time.Hour)

	accessToken, _, err := tg.GenerateTokens("user@example.com")
	require.NoError(t, err)

	email, err := tg.ValidateAccessToken(accessToken)

	assert.Error(t, err)
	assert.Empty(t, email)
}

func TestTokenGenerator_ValidateAccessToken_Malformed(t *testing.T) {
	tg := setupTokenGenerator()

	email, err := tg.ValidateAccessToken("not.a.token")

	assert.Error(t, err)
	assert.Empty(t, email)
}
