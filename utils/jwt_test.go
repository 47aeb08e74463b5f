package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenPair(t *testing.T) {
	pair, err := GenerateTokenPair("user_1", "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	access, err := ParseToken(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user_1", access.UserID)
	assert.Equal(t, "alice@example.com", access.Email)
	assert.NotEmpty(t, access.ID)

	refresh, err := ParseToken(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
}

func TestParseToken_Rejects(t *testing.T) {
	access, err := GenerateToken("user_1", "a@example.com", TokenTypeAccess)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID:    "user_1",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredString, err := expired.SignedString(jwtSecret)
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{
		UserID:    "user_1",
		TokenType: TokenTypeAccess,
	})
	foreignString, err := foreign.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	noUser := jwt.NewWithClaims(jwt.SigningMethodHS256, &CustomClaims{TokenType: TokenTypeAccess})
	noUserString, err := noUser.SignedString(jwtSecret)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType string
	}{
		{"wrong type", access, TokenTypeRefresh},
		{"expired", expiredString, TokenTypeAccess},
		{"foreign signature", foreignString, TokenTypeAccess},
		{"missing user", noUserString, TokenTypeAccess},
		{"garbage", "not.a.token", TokenTypeAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.token, tt.tokenType)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestGenerateToken_UniquePerCall(t *testing.T) {
	first, err := GenerateToken("user_1", "a@example.com", TokenTypeAccess)
	require.NoError(t, err)
	second, err := GenerateToken("user_1", "a@example.com", TokenTypeAccess)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
