package daycares

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
	Create(ctx context.Context, d *Daycare) error
	GetByID(ctx context.Context, id int64) (*Daycare, error)
	List(ctx context.Context, f Filter) ([]Daycare, int, error)
	Update(ctx context.Context, id, userID int64, updates map[string]any) (*Daycare, error)
	Delete(ctx context.Context, id, userID int64) error
	ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error)
}

type Repository struct {
	db dbx.DB
}

func NewRepository(q dbx.DB) *Repository {
	return &Repository{db: q}
}

const columns = `id, name, neighborhood, address, service, rating_label, pet_treatment,
	extra_comments, author_id, like_count, liked_by, comment_count, created_at, updated_at`

// comment_count only moves through reviews.
var updatable = map[string]bool{
	"name":           true,
	"neighborhood":   true,
	"address":        true,
	"service":        true,
	"rating_label":   true,
	"pet_treatment":  true,
	"extra_comments": true,
}

var filterable = map[string]bool{"service": true, "neighborhood": true}

func scan(row pgx.Row, d *Daycare) error {
	return row.Scan(
		&d.ID,
		&d.Name,
		&d.Neighborhood,
		&d.Address,
		&d.Service,
		&d.RatingLabel,
		&d.PetTreatment,
		&d.ExtraComments,
		&d.AuthorID,
		&d.LikeCount,
		&d.LikedBy,
		&d.CommentCount,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, d *Daycare) error {
	query := `
		INSERT INTO guarderias (name, neighborhood, address, service, rating_label, pet_treatment, extra_comments, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, like_count, liked_by, comment_count, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		d.Name, d.Neighborhood, d.Address, d.Service, d.RatingLabel, d.PetTreatment, d.ExtraComments, d.AuthorID,
	).Scan(&d.ID, &d.LikeCount, &d.LikedBy, &d.CommentCount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create daycare: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Daycare, error) {
	query := `SELECT ` + columns + ` FROM guarderias WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var d Daycare
	if err := scan(r.db.QueryRow(ctx, query, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Daycare, int, error) {
	pf := posts.Filter{
		AuthorID: f.AuthorID,
		Equals:   map[string]string{"service": f.Service, "neighborhood": f.Neighborhood},
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM guarderias `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := posts.Page(pf, args)
	query := `SELECT ` + columns + ` FROM guarderias ` + where + ` ORDER BY created_at DESC, id DESC ` + page

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Daycare{}
	for rows.Next() {
		var d Daycare
		if err := scan(rows, &d); err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID int64, updates map[string]any) (*Daycare, error) {
	if err := posts.Update(ctx, r.db, collection.Daycares, id, userID, updates, updatable); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	return posts.Delete(ctx, r.db, collection.Daycares, id, userID)
}

func (r *Repository) ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error) {
	return likes.Toggle(ctx, r.db, collection.Daycares, id, userID)
}
