package advice

import (
	"context"
	"errors"
	"fmt"

	"patitas/internal/domain/collection"
	"patitas/internal/domain/likes"
	"patitas/internal/domain/posts"
	"patitas/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	Create(ctx context.Context, a *Advice) error
	GetByID(ctx context.Context, id int64) (*Advice, error)
	List(ctx context.Context, f Filter) ([]Advice, int, error)
	Update(ctx context.Context, id, userID int64, updates map[string]any) (*Advice, error)
	Delete(ctx context.Context, id, userID int64) error
	ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error)
}

type Repository struct {
	db dbx.DB
}

func NewRepository(q dbx.DB) *Repository {
	return &Repository{db: q}
}

const columns = `id, title, alias, category, description, pet_type, author_id,
	like_count, liked_by, created_at, updated_at`

var updatable = map[string]bool{
	"title":       true,
	"alias":       true,
	"category":    true,
	"description": true,
	"pet_type":    true,
}

var filterable = map[string]bool{"category": true, "pet_type": true}

func scan(row pgx.Row, a *Advice) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Alias,
		&a.Category,
		&a.Description,
		&a.PetType,
		&a.AuthorID,
		&a.LikeCount,
		&a.LikedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, a *Advice) error {
	query := `
		INSERT INTO consejos (title, alias, category, description, pet_type, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, like_count, liked_by, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		a.Title, a.Alias, a.Category, a.Description, a.PetType, a.AuthorID,
	).Scan(&a.ID, &a.LikeCount, &a.LikedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create advice: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Advice, error) {
	query := `SELECT ` + columns + ` FROM consejos WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var a Advice
	if err := scan(r.db.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// List returns a page of advice, newest first, plus the total matching count.
func (r *Repository) List(ctx context.Context, f Filter) ([]Advice, int, error) {
	pf := posts.Filter{
		AuthorID: f.AuthorID,
		Equals:   map[string]string{"category": f.Category, "pet_type": f.PetType},
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
	where, args, err := posts.Where(pf, filterable)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM consejos `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := posts.Page(pf, args)
	query := `SELECT ` + columns + ` FROM consejos ` + where + ` ORDER BY created_at DESC, id DESC ` + page

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Advice{}
	for rows.Next() {
		var a Advice
		if err := scan(rows, &a); err != nil {
			return nil, 0, err
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID int64, updates map[string]any) (*Advice, error) {
	if err := posts.Update(ctx, r.db, collection.Advice, id, userID, updates, updatable); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	return posts.Delete(ctx, r.db, collection.Advice, id, userID)
}

func (r *Repository) ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error) {
	return likes.Toggle(ctx, r.db, collection.Advice, id, userID)
}
