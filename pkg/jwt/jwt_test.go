package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "test-issuer", 1)

	token, err := tm.GenerateToken(2, "mentor1@hackcareer.com", "Demo Mentor", "MENTOR")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.UserID)
	assert.Equal(t, "mentor1@hackcareer.com", claims.Email)
	assert.Equal(t, "Demo Mentor", claims.Name)
	assert.Equal(t, "MENTOR", claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "iss", 1).GenerateToken(1, "a@b.com", "A", "ADMIN")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "iss", 1).ValidateToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := NewTokenManager("secret", "iss", -1).GenerateToken(1, "a@b.com", "A", "ADMIN")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "iss", -1).ValidateToken(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", "iss", 1).ValidateToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	fresh, err := NewTokenManager("secret", "iss", 1).GenerateToken(1, "a@b.com", "A", "ADMIN")
	require.NoError(t, err)
	assert.False(t, IsExpired(fresh, now))

	stale, err := NewTokenManager("secret", "iss", -1).GenerateToken(1, "a@b.com", "A", "ADMIN")
	require.NoError(t, err)
	assert.True(t, IsExpired(stale, now))
}

func TestIsExpired_OpaqueTokenNeverExpires(t *testing.T) {
	assert.False(t, IsExpired("demo-token", time.Now()))
	assert.False(t, IsExpired("", time.Now()))
}
