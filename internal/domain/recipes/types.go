package recipes

import (
	"time"

	"patitas/internal/domain/posts"
)

var (
	ErrNotFound          = posts.ErrNotFound
	QueryTimeoutDuration = time.Second * 5
)

var (
	Types    = []string{"Snacks y premios", "Comidas completas", "Recetas Refrescantes", "Especiales", "Masticables", "Funcionales"}
	PetTypes = []string{"Perros", "Gatos", "Roedores", "Aves", "Otra tipo"}
)

type Recipe struct {
	ID          int64
	Name        string
	Alias       string
	RecipeType  string
	PetType     string
	Ingredients string
	Preparation string
	AuthorID    *int64
	LikeCount   int
	LikedBy     []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Filter struct {
	AuthorID   *int64
	RecipeType string
	PetType    string
	Limit      int
	Offset     int
}
