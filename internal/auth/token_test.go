package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager(t *testing.T) {
	t.Run("Empty secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.Error(t, err)
	})

	t.Run("Default TTL", func(t *testing.T) {
		m, err := NewTokenManager("secret", 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultTokenTTL, m.ttl)
	})
}

func TestTokenManager_IssueAndResolve(t *testing.T) {
	m, err := NewTokenManager("secret", DefaultTokenTTL)
	require.NoError(t, err)

	t.Run("Round trip", func(t *testing.T) {
		token, err := m.IssueToken("64f0c0ffee")
		require.NoError(t, err)

		id, ok := m.ResolveToken(token)
		assert.True(t, ok)
		assert.EqualValues(t, "64f0c0ffee", id)
	})

	t.Run("Expires after four hours", func(t *testing.T) {
		issued := time.Now()
		m.now = func() time.Time { return issued }
		defer func() { m.now = time.Now }()

		token, err := m.IssueToken("1")
		require.NoError(t, err)

		var claims Claims
		_, _, err = new(jwt.Parser).ParseUnverified(token, &claims)
		require.NoError(t, err)
		assert.Equal(t, issued.Add(4*time.Hour).Unix(), claims.ExpiresAt.Unix())
		assert.Equal(t, "1", claims.Subject)
	})

	t.Run("Expired token", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(-5 * time.Hour) }
		defer func() { m.now = time.Now }()

		token, err := m.IssueToken("1")
		require.NoError(t, err)

		_, ok := m.ResolveToken(token)
		assert.False(t, ok)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other, err := NewTokenManager("other", time.Hour)
		require.NoError(t, err)

		token, err := other.IssueToken("1")
		require.NoError(t, err)

		_, ok := m.ResolveToken(token)
		assert.False(t, ok)
	})

	t.Run("Malformed token", func(t *testing.T) {
		_, ok := m.ResolveToken("not.a.token")
		assert.False(t, ok)

		_, ok = m.ResolveToken("")
		assert.False(t, ok)
	})

	t.Run("Token without user_id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, ok := m.ResolveToken(tokenString)
		assert.False(t, ok)
	})

	t.Run("Empty user id", func(t *testing.T) {
		_, err := m.IssueToken("")
		assert.Error(t, err)
	})
}

func TestHashPassword(t *testing.T) {
	t.Run("Hash differs from plaintext and verifies", func(t *testing.T) {
		hash, err := HashPassword("secret")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", hash)

		assert.True(t, CheckPassword("secret", hash))
		assert.False(t, CheckPassword("wrong", hash))
	})

	t.Run("Salted", func(t *testing.T) {
		first, err := HashPassword("secret")
		require.NoError(t, err)
		second, err := HashPassword("secret")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Too long password", func(t *testing.T) {
		hash, err := HashPassword(strings.Repeat("a", 100))
		assert.ErrorIs(t, err, ErrCredential)
		assert.Empty(t, hash)
	})

	t.Run("Garbage hash", func(t *testing.T) {
		assert.False(t, CheckPassword("secret", "not-a-hash"))
	})
}
