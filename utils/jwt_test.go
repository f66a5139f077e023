package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "cashier")
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cashier", claims.Role)
}

func TestInitJWTReplacesSecret(t *testing.T) {
	previous := JWTSecret
	defer func() { JWTSecret = previous }()

	old, err := GenerateToken(1, "owner")
	assert.NoError(t, err)

	// A secret loaded from .env must invalidate tokens signed with the
	// compiled-in fallback.
	InitJWT("secret-from-dotenv")
	_, err = ParseToken(old)
	assert.Error(t, err)

	fresh, err := GenerateToken(1, "owner")
	assert.NoError(t, err)
	claims, err := ParseToken(fresh)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestInitJWTEmptyKeepsSecret(t *testing.T) {
	previous := JWTSecret
	defer func() { JWTSecret = previous }()

	token, err := GenerateToken(7, "kitchen")
	assert.NoError(t, err)

	InitJWT("")
	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}
