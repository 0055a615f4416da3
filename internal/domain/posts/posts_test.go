package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasOrDefault(t *testing.T) {
	assert.Equal(t, "luna", AliasOrDefault("luna"))
	assert.Equal(t, "luna", AliasOrDefault("  luna "))
	assert.Equal(t, DefaultAlias, AliasOrDefault(""))
	assert.Equal(t, DefaultAlias, AliasOrDefault("   "))
}

func TestWhere(t *testing.T) {
	allowed := map[string]bool{"pet_type": true, "category": true}

	t.Run("empty filter", func(t *testing.T) {
		clause, args, err := Where(Filter{}, allowed)
		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("author and columns in stable order", func(t *testing.T) {
		author := int64(7)
		clause, args, err := Where(Filter{
			AuthorID: &author,
			Equals:   map[string]string{"pet_type": "Perros", "category": "Salud"},
		}, allowed)
		require.NoError(t, err)
		assert.Equal(t, "WHERE author_id = $1 AND category = $2 AND pet_type = $3", clause)
		assert.Equal(t, []any{int64(7), "Salud", "Perros"}, args)
	})

	t.Run("blank values skipped", func(t *testing.T) {
		clause, args, err := Where(Filter{Equals: map[string]string{"pet_type": ""}}, allowed)
		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("unknown column rejected", func(t *testing.T) {
		_, _, err := Where(Filter{Equals: map[string]string{"password": "x"}}, allowed)
		assert.Error(t, err)
	})
}

func TestPage(t *testing.T) {
	clause, args := Page(Filter{Limit: 20, Offset: 40}, []any{"x"})
	assert.Equal(t, "LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"x", 20, 40}, args)

	clause, args = Page(Filter{}, nil)
	assert.Equal(t, "LIMIT $1 OFFSET $2", clause)
	assert.Equal(t, []any{15, 0}, args)
}
