package comments

import (
	"time"

	"patitas/internal/domain/collection"
	"patitas/internal/domain/posts"
)

var (
	ErrNotFound          = posts.ErrNotFound
	QueryTimeoutDuration = time.Second * 5
)

// Comment is a document of a parent's comentarios sub-collection. Rating and Title are
// only set on daycare reviews.
type Comment struct {
	ID          int64
	Collection  collection.Name
	ParentID    int64
	AuthorID    *int64
	AuthorAlias string
	Text        string
	Rating      *int
	Title       *string
	CreatedAt   time.Time
}
