package storage

import (
	"context"
	"fmt"

	"patitas/internal/db"
	"patitas/internal/domain/advice"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/comments"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/posts"
	"patitas/internal/domain/pushtokens"
	"patitas/internal/domain/recipes"
	"patitas/internal/domain/users"
	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Container struct {
	db         dbx.DB
	Users      users.Store
	Advice     advice.Store
	Recipes    recipes.Store
	Daycares   daycares.Store
	Comments   comments.Store
	PushTokens pushtokens.Store
}

func NewContainer(q dbx.DB) *Container {
	return &Container{
		db:         q,
		Users:      users.NewRepository(q),
		Advice:     advice.NewRepository(q),
		Recipes:    recipes.NewRepository(q),
		Daycares:   daycares.NewRepository(q),
		Comments:   comments.NewRepository(q),
		PushTokens: pushtokens.NewRepository(q),
	}
}

// AccountTx is a tx-scoped set of the account repositories.
type AccountTx struct {
	Users      users.Store
	PushTokens pushtokens.Store
}

// WithAccountTx runs an account unit of work atomically, e.g. creating a user and
// storing its first refresh token.
func (c *Container) WithAccountTx(ctx context.Context, fn func(s *AccountTx) error) error {
	if c.db == nil {
		return fmt.Errorf("storage container has no database")
	}

	return db.WithTx(ctx, c.db, func(tx pgx.Tx) error {
		return fn(&AccountTx{
			Users:      users.NewRepository(tx),
			PushTokens: pushtokens.NewRepository(tx),
		})
	})
}

// PostAuthor looks up who wrote a document in any of the post collections.
func (c *Container) PostAuthor(ctx context.Context, coll collection.Name, id int64) (*int64, error) {
	return posts.Author(ctx, c.db, coll, id)
}
