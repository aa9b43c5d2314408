package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)

	token, expires, err := m.GenerateToken("user-1", "owner@salon.test", "salon")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "owner@salon.test", claims.Email)
	assert.Equal(t, "salon", claims.Role)
	assert.Equal(t, expires.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTManager("one", time.Hour)
	verifier := NewJWTManager("two", time.Hour)

	token, _, err := issuer.GenerateToken("user-1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	token, _, err := m.GenerateToken("user-1", "a@b.c", "customer")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashToken_IsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
