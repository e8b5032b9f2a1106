package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	InitializeJWT("test-secret")

	token, err := GenerateToken(7, "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	InitializeJWT("test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	InitializeJWT("first-secret")
	token, err := GenerateToken(1, "a@b.com")
	require.NoError(t, err)

	InitializeJWT("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, VerifyPassword("secret123", hash))
	assert.Error(t, VerifyPassword("wrong", hash))
}
