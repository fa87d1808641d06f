package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name    string
		email   string
		role    string
		userUID string
	}{
		{
			name:    "student",
			email:   "student@example.com",
			role:    "student",
			userUID: "7c9f3a1e-0000-0000-0000-000000000001",
		},
		{
			name:    "tutor",
			email:   "tutor@example.com",
			role:    "tutor",
			userUID: "7c9f3a1e-0000-0000-0000-000000000002",
		},
		{
			name:    "admin",
			email:   "admin@example.com",
			role:    "admin",
			userUID: "7c9f3a1e-0000-0000-0000-000000000003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.email, tt.role, tt.userUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	validToken, err := maker.GenerateToken("student@example.com", "student", "uid-1")
	require.NoError(t, err)

	otherMaker := NewJWTMaker("another_secret_key", 15*time.Minute)
	foreignToken, err := otherMaker.GenerateToken("student@example.com", "student", "uid-1")
	require.NoError(t, err)

	expiredMaker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)
	expiredToken, err := expiredMaker.GenerateToken("student@example.com", "student", "uid-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"пустой токен", ""},
		{"мусорная строка", "not.a.jwt"},
		{"чужой секретный ключ", foreignToken},
		{"истекший токен", expiredToken},
		{"поврежденный валидный токен", validToken + "tampered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
