package comments

import (
	"context"
	"errors"
	"fmt"

	"patitas/internal/db"
	"patitas/internal/domain/collection"
	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, c *Comment) error
	CreateWithCounter(ctx context.Context, c *Comment) error
	List(ctx context.Context, coll collection.Name, parentID int64) ([]Comment, error)
}

type Repository struct {
	db dbx.DB
}

func NewRepository(q dbx.DB) *Repository {
	return &Repository{db: q}
}

// Create inserts a comment if its parent document exists.
func (r *Repository) Create(ctx context.Context, c *Comment) error {
	if !c.Collection.Valid() {
		return fmt.Errorf("unknown collection %q", c.Collection)
	}

	query := fmt.Sprintf(`
		INSERT INTO comentarios (collection, parent_id, author_id, author_alias, text, rating, title)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE EXISTS (SELECT 1 FROM %s WHERE id = $2)
		RETURNING id, created_at`, c.Collection)

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		string(c.Collection), c.ParentID, c.AuthorID, c.AuthorAlias, c.Text, c.Rating, c.Title,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// CreateWithCounter inserts the comment and increments the parent's comment_count as
// one batch inside one transaction. Either both writes land or neither does.
func (r *Repository) CreateWithCounter(ctx context.Context, c *Comment) error {
	if c.Collection != collection.Daycares {
		return fmt.Errorf("collection %q has no comment counter", c.Collection)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		batch.Queue(`
			UPDATE guarderias
			SET comment_count = comment_count + 1
			WHERE id = $1
			RETURNING id`, c.ParentID)
		batch.Queue(`
			INSERT INTO comentarios (collection, parent_id, author_id, author_alias, text, rating, title)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			string(c.Collection), c.ParentID, c.AuthorID, c.AuthorAlias, c.Text, c.Rating, c.Title)

		br := tx.SendBatch(ctx, batch)

		var parentID int64
		if err := br.QueryRow().Scan(&parentID); err != nil {
			br.Close()
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("increment comment count: %w", err)
		}

		if err := br.QueryRow().Scan(&c.ID, &c.CreatedAt); err != nil {
			br.Close()
			return fmt.Errorf("insert review: %w", err)
		}

		return br.Close()
	})
}

// List returns the parent's comments, oldest first.
func (r *Repository) List(ctx context.Context, coll collection.Name, parentID int64) ([]Comment, error) {
	query := `
		SELECT id, collection, parent_id, author_id, author_alias, text, rating, title, created_at
		FROM comentarios
		WHERE collection = $1 AND parent_id = $2
		ORDER BY created_at ASC, id ASC`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := r.db.Query(ctx, query, string(coll), parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Comment{}
	for rows.Next() {
		var c Comment
		var name string
		var rating *int16
		if err := rows.Scan(
			&c.ID,
			&name,
			&c.ParentID,
			&c.AuthorID,
			&c.AuthorAlias,
			&c.Text,
			&rating,
			&c.Title,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		c.Collection = collection.Name(name)
		if rating != nil {
			v := int(*rating)
			c.Rating = &v
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
