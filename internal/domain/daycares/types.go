package daycares

import (
	"time"

	"patitas/internal/domain/posts"
)

var (
	ErrNotFound          = posts.ErrNotFound
	QueryTimeoutDuration = time.Second * 5
)

var (
	Services     = []string{"Guardería de dia", "Hotel / Hospedaje", "Paseos", "Peluqueria", "Entrenamiento"}
	RatingLabels = []string{"Super Recomendable", "Recomendable", "Aceptable", "Malo", "Muy Malo"}
)

// Daycare is a daycare post. RatingLabel is the author's verdict; star ratings live on
// the reviews in its comentarios sub-collection, counted by CommentCount.
type Daycare struct {
	ID            int64
	Name          string
	Neighborhood  string
	Address       string
	Service       string
	RatingLabel   string
	PetTreatment  string
	ExtraComments string
	AuthorID      *int64
	LikeCount     int
	LikedBy       []int64
	CommentCount  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Filter struct {
	AuthorID     *int64
	Service      string
	Neighborhood string
	Limit        int
	Offset       int
}
