package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/geosites/internal/domain/users"
)

func TestIssueParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	raw, exp, err := tokens.Issue(&users.User{ID: 7, Email: "u@example.com", Role: users.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	actor, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), actor.UserID)
	assert.Equal(t, "u@example.com", actor.Email)
	assert.True(t, actor.IsAdmin())
}

func TestParseRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	u := &users.User{ID: 7, Email: "u@example.com", Role: users.RoleUser}

	t.Run("wrong secret", func(t *testing.T) {
		raw, _, err := NewTokens("other", time.Hour).Issue(u)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewTokens("secret", time.Minute)
		old.now = func() time.Time { return time.Now().Add(-time.Hour) }
		raw, _, err := old.Issue(u)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := &Claims{Role: users.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
			Issuer: issuer, Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = tokens.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not.a.token")
		assert.Error(t, err)
	})
}

func TestBcrypt(t *testing.T) {
	h := Bcrypt{Cost: 4}
	hash, err := h.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.NoError(t, h.Compare(hash, "hunter22"))
	assert.Error(t, h.Compare(hash, "hunter23"))
}
