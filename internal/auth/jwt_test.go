package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", "patitas", "patitas", time.Hour, 2*time.Hour)
}

func TestGenerateAndValidate(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(42)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	tok, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	id, err := UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	tok, err = a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	id, err = UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(1)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	a := NewJWTAuthenticator("s", "r", "patitas", "patitas", -time.Minute, -time.Minute)

	access, _, err := a.GenerateTokens(1)
	require.NoError(t, err)

	_, err = a.ValidateAccessToken(access)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestUserIDRejectsMissingSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, err := UserID(tok)
	assert.ErrorIs(t, err, ErrInvalidSubject)
}
