package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair(42, "admin", testSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "admin", access.Role)
	assert.Equal(t, TokenTypeAccess, access.TokenType)
	assert.True(t, access.Fresh, "login access tokens must be fresh")
	assert.NotEmpty(t, access.ID)

	refresh, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.False(t, refresh.Fresh)
	assert.NotEqual(t, access.ID, refresh.ID, "each token needs its own jti")
}

func TestGenerateAccessToken_NotFresh(t *testing.T) {
	tokenString, err := GenerateAccessToken(7, "user", false, testSecret, 15*time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.False(t, claims.Fresh)
}

func TestValidateToken_Expired(t *testing.T) {
	tokenString, err := GenerateAccessToken(1, "user", true, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateAccessToken(1, "user", true, testSecret, 15*time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(tokenString, "some-other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, testSecret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenPair_UniqueJTIPerLogin(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		pair, err := GenerateTokenPair(1, "user", testSecret, time.Minute, time.Hour)
		require.NoError(t, err)

		claims, err := ValidateToken(pair.AccessToken, testSecret)
		require.NoError(t, err)
		assert.False(t, seen[claims.ID], "jti must be unique across logins")
		seen[claims.ID] = true
	}
}
