package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	var u User
	require.NoError(t, u.Password.Set("secreto123"))

	assert.NoError(t, u.Password.Compare("secreto123"))
	assert.Error(t, u.Password.Compare("otra-cosa"))
	assert.NotEqual(t, []byte("secreto123"), u.Password.hash)
}

func TestResetExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var u User
	assert.True(t, u.ResetExpired(now), "no pending token")

	later := now.Add(3 * time.Hour)
	u.ResetPasswordExpires = &later
	assert.False(t, u.ResetExpired(now))
	assert.True(t, u.ResetExpired(later.Add(time.Second)))
}
