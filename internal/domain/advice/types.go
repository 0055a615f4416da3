package advice

import (
	"time"

	"patitas/internal/domain/posts"
)

var (
	ErrNotFound          = posts.ErrNotFound
	QueryTimeoutDuration = time.Second * 5
)

// Categories offered by the advice form.
var Categories = []string{"Alimentación", "Salud", "Comportamiento", "Higiene", "Curiosidades"}

type Advice struct {
	ID          int64
	Title       string
	Alias       string
	Category    string
	Description string
	PetType     string
	AuthorID    *int64
	LikeCount   int
	LikedBy     []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	AuthorID *int64
	Category string
	PetType  string
	Limit    int
	Offset   int
}
