package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	c, err := New("patitas-test", 8)
	require.NoError(t, err)

	for _, id := range []int64{1, 42, 9_999_999} {
		s := c.Encode(id)
		assert.GreaterOrEqual(t, len(s), 8)

		got, err := c.Decode(s)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestCodec_DecodeRejectsGarbage(t *testing.T) {
	c, err := New("patitas-test", 8)
	require.NoError(t, err)

	for _, s := range []string{"", "!!!", "not-an-id"} {
		_, err := c.Decode(s)
		assert.ErrorIs(t, err, ErrInvalid, s)
	}
}

func TestCodec_SaltChangesEncoding(t *testing.T) {
	a, err := New("salt-a", 8)
	require.NoError(t, err)
	b, err := New("salt-b", 8)
	require.NoError(t, err)

	assert.NotEqual(t, a.Encode(7), b.Encode(7))
}
