package security

import (
	"Inkwell/internal/api/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *TokenManager {
	return NewTokenManager(config.JWTConfig{Secret: "test-secret", Issuer: "Inkwell", Expiration: 1})
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager()

	token, err := m.GenerateToken(42, []string{"admin"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.InDelta(t, time.Hour.Seconds(), m.Remaining(claims).Seconds(), 5)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := newManager().GenerateToken(1, []string{"user"})
	require.NoError(t, err)

	other := NewTokenManager(config.JWTConfig{Secret: "other", Issuer: "Inkwell", Expiration: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	m := newManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.GenerateToken(1, nil)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	sig, err := ExtractSignature("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "c", sig)

	_, err = ExtractSignature("a.b")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NoError(t, CheckPasswordHash("secret1", hash))
	assert.ErrorIs(t, CheckPasswordHash("wrong", hash), ErrInvalidCredentials)

	_, err = HashPassword("")
	assert.Error(t, err)
}
