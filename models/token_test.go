package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken builds a real HS256 token carrying the given claims; the
// resolution helpers parse without verification, so any key works.
func signToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestTokenPair_ExpiresAt_PrefersExpiresIn(t *testing.T) {
	now := time.Now()
	pair := TokenPair{AccessToken: "opaque", ExpiresIn: 3600}

	assert.Equal(t, now.Add(time.Hour), pair.ExpiresAt(now))
}

func TestTokenPair_ExpiresAt_FallsBackToExpClaim(t *testing.T) {
	now := time.Now()
	exp := now.Add(30 * time.Minute).Truncate(time.Second)
	pair := TokenPair{AccessToken: signToken(t, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})}

	assert.Equal(t, exp.Unix(), pair.ExpiresAt(now).Unix())
}

func TestTokenPair_ExpiresAt_NoLifetimeMeansStale(t *testing.T) {
	now := time.Now()
	pair := TokenPair{AccessToken: "not-a-jwt"}

	assert.Equal(t, now, pair.ExpiresAt(now), "a token with unknown lifetime is treated as already expired")
}

func TestTokenPair_UserID(t *testing.T) {
	withUser := TokenPair{User: AuthUser{ID: "user-1"}}
	assert.Equal(t, "user-1", withUser.UserID())

	fromSub := TokenPair{AccessToken: signToken(t, jwt.RegisteredClaims{Subject: "user-2"})}
	assert.Equal(t, "user-2", fromSub.UserID(), "missing user object falls back to the sub claim")

	assert.Empty(t, TokenPair{AccessToken: "garbage"}.UserID())
}

func TestCookie_Expiry(t *testing.T) {
	exp := 1735689600.5
	c := Cookie{Name: "sessionid", ExpirationDate: &exp}

	got, ok := c.Expiry()
	require.True(t, ok)
	assert.Equal(t, int64(1735689600), got.Unix())
	assert.False(t, c.IsSession())

	_, ok = Cookie{Name: "sessionid"}.Expiry()
	assert.False(t, ok)
	assert.True(t, Cookie{Name: "sessionid"}.IsSession())
}
