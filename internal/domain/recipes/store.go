package recipes

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
	Create(ctx context.Context, rc *Recipe) error
	GetByID(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, f Filter) ([]Recipe, int, error)
	Update(ctx context.Context, id, userID int64, updates map[string]any) (*Recipe, error)
	Delete(ctx context.Context, id, userID int64) error
	ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error)
}

type Repository struct {
	db dbx.DB
}

func NewRepository(q dbx.DB) *Repository {
	return &Repository{db: q}
}

const columns = `id, name, alias, recipe_type, pet_type, ingredients, preparation, author_id,
	like_count, liked_by, created_at, updated_at`

var updatable = map[string]bool{
	"name":        true,
	"alias":       true,
	"recipe_type": true,
	"pet_type":    true,
	"ingredients": true,
	"preparation": true,
}

var filterable = map[string]bool{"recipe_type": true, "pet_type": true}

func scan(row pgx.Row, rc *Recipe) error {
	return row.Scan(
		&rc.ID,
		&rc.Name,
		&rc.Alias,
		&rc.RecipeType,
		&rc.PetType,
		&rc.Ingredients,
		&rc.Preparation,
		&rc.AuthorID,
		&rc.LikeCount,
		&rc.LikedBy,
		&rc.CreatedAt,
		&rc.UpdatedAt,
	)
}

func (r *Repository) Create(ctx context.Context, rc *Recipe) error {
	query := `
		INSERT INTO recetas (name, alias, recipe_type, pet_type, ingredients, preparation, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, like_count, liked_by, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, query,
		rc.Name, rc.Alias, rc.RecipeType, rc.PetType, rc.Ingredients, rc.Preparation, rc.AuthorID,
	).Scan(&rc.ID, &rc.LikeCount, &rc.LikedBy, &rc.CreatedAt, &rc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	query := `SELECT ` + columns + ` FROM recetas WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var rc Recipe
	if err := scan(r.db.QueryRow(ctx, query, id), &rc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rc, nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Recipe, int, error) {
	pf := posts.Filter{
		AuthorID: f.AuthorID,
		Equals:   map[string]string{"recipe_type": f.RecipeType, "pet_type": f.PetType},
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
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recetas `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, args := posts.Page(pf, args)
	query := `SELECT ` + columns + ` FROM recetas ` + where + ` ORDER BY created_at DESC, id DESC ` + page

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Recipe{}
	for rows.Next() {
		var rc Recipe
		if err := scan(rows, &rc); err != nil {
			return nil, 0, err
		}
		list = append(list, rc)
	}
	return list, total, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID int64, updates map[string]any) (*Recipe, error) {
	if err := posts.Update(ctx, r.db, collection.Recipes, id, userID, updates, updatable); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) error {
	return posts.Delete(ctx, r.db, collection.Recipes, id, userID)
}

func (r *Repository) ToggleLike(ctx context.Context, id, userID int64) (*likes.Result, error) {
	return likes.Toggle(ctx, r.db, collection.Recipes, id, userID)
}
