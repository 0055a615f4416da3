package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		page   int
		offset int
	}{
		{"defaults", "", DefaultLimit, 1, 0},
		{"explicit", "limit=10&page=3", 10, 3, 20},
		{"limit clamped", "limit=100", MaxLimit, 1, 0},
		{"zero limit", "limit=0", DefaultLimit, 1, 0},
		{"negative page", "page=-2", DefaultLimit, 1, 0},
		{"garbage", "limit=abc&page=xyz", DefaultLimit, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 15, Page: 2, Offset: 15}
	p.ComputeMeta(31)

	assert.Equal(t, 31, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
}

func TestParseListQuery(t *testing.T) {
	q, _ := url.ParseQuery("author=me&pet_type=Gatos&category=&other=x&limit=5")

	lq, err := ParseListQuery(q, "pet_type", "category")
	require.NoError(t, err)
	assert.True(t, lq.Mine)
	assert.Equal(t, map[string]string{"pet_type": "Gatos"}, lq.Filters)
	assert.Equal(t, 5, lq.Limit)

	q, _ = url.ParseQuery("author=42")
	_, err = ParseListQuery(q)
	assert.ErrorIs(t, err, ErrInvalidAuthor)
}
