package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	token, err := maker.GenerateToken("alice", "user", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, int64(42), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestMaker_ParseExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("alice", "user", 42)
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestMaker_ParseWrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)
	other := NewJWTMaker("another-secret", time.Minute)

	token, err := maker.GenerateToken("bob", "admin", 1)
	require.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
