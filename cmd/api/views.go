package main

import (
	"net/http"
	"strings"
	"time"

	"patitas/internal/domain/advice"
	"patitas/internal/domain/comments"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/likes"
	"patitas/internal/domain/posts"
	"patitas/internal/domain/recipes"
	"patitas/internal/domain/users"
	"patitas/internal/params"

	"github.com/go-chi/chi/v5"
)

// docID decodes the {id} URL param. Malformed ids are reported as not found, like any
// other id that matches no document.
func (app *application) docID(r *http.Request) (int64, error) {
	id, err := app.ids.Decode(chi.URLParam(r, "id"))
	if err != nil {
		return 0, posts.ErrNotFound
	}
	return id, nil
}

func (app *application) encodeAuthor(id *int64) string {
	if id == nil {
		return ""
	}
	return app.ids.Encode(*id)
}

func viewerID(r *http.Request) int64 {
	if u := getUserFromContext(r); u != nil {
		return u.ID
	}
	return 0
}

type listResponse struct {
	Items      any               `json:"items"`
	Pagination params.Pagination `json:"pagination"`
}

type postMeta struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id,omitempty"`
	IsMine    bool      `json:"is_mine"`
	LikeCount int       `json:"like_count"`
	LikedBy   []string  `json:"liked_by"`
	LikedByMe bool      `json:"liked_by_me"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (app *application) meta(id int64, authorID *int64, likeCount int, likedBy []int64, createdAt, updatedAt time.Time, viewer int64) postMeta {
	return postMeta{
		ID:        app.ids.Encode(id),
		AuthorID:  app.encodeAuthor(authorID),
		IsMine:    viewer != 0 && authorID != nil && *authorID == viewer,
		LikeCount: likeCount,
		LikedBy:   app.ids.EncodeMany(likedBy),
		LikedByMe: viewer != 0 && likes.Contains(likedBy, viewer),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

type adviceView struct {
	postMeta
	Title       string `json:"title"`
	Alias       string `json:"alias"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PetType     string `json:"pet_type"`
}

func (app *application) adviceView(a *advice.Advice, viewer int64) adviceView {
	return adviceView{
		postMeta:    app.meta(a.ID, a.AuthorID, a.LikeCount, a.LikedBy, a.CreatedAt, a.UpdatedAt, viewer),
		Title:       a.Title,
		Alias:       a.Alias,
		Category:    a.Category,
		Description: a.Description,
		PetType:     a.PetType,
	}
}

type recipeView struct {
	postMeta
	Name        string `json:"name"`
	Alias       string `json:"alias"`
	RecipeType  string `json:"recipe_type"`
	PetType     string `json:"pet_type"`
	Ingredients string `json:"ingredients"`
	Preparation string `json:"preparation"`
}

func (app *application) recipeView(rc *recipes.Recipe, viewer int64) recipeView {
	return recipeView{
		postMeta:    app.meta(rc.ID, rc.AuthorID, rc.LikeCount, rc.LikedBy, rc.CreatedAt, rc.UpdatedAt, viewer),
		Name:        rc.Name,
		Alias:       rc.Alias,
		RecipeType:  rc.RecipeType,
		PetType:     rc.PetType,
		Ingredients: rc.Ingredients,
		Preparation: rc.Preparation,
	}
}

type daycareView struct {
	postMeta
	Name          string `json:"name"`
	Neighborhood  string `json:"neighborhood"`
	Address       string `json:"address"`
	Service       string `json:"service"`
	RatingLabel   string `json:"rating_label"`
	PetTreatment  string `json:"pet_treatment"`
	ExtraComments string `json:"extra_comments"`
	CommentCount  int    `json:"comment_count"`
}

func (app *application) daycareView(d *daycares.Daycare, viewer int64) daycareView {
	return daycareView{
		postMeta:      app.meta(d.ID, d.AuthorID, d.LikeCount, d.LikedBy, d.CreatedAt, d.UpdatedAt, viewer),
		Name:          d.Name,
		Neighborhood:  d.Neighborhood,
		Address:       d.Address,
		Service:       d.Service,
		RatingLabel:   d.RatingLabel,
		PetTreatment:  d.PetTreatment,
		ExtraComments: d.ExtraComments,
		CommentCount:  d.CommentCount,
	}
}

type commentView struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorAlias string    `json:"author_alias"`
	Text        string    `json:"text"`
	Rating      *int      `json:"rating,omitempty"`
	Title       *string   `json:"title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (app *application) commentView(c *comments.Comment) commentView {
	return commentView{
		ID:          app.ids.Encode(c.ID),
		AuthorID:    app.encodeAuthor(c.AuthorID),
		AuthorAlias: c.AuthorAlias,
		Text:        c.Text,
		Rating:      c.Rating,
		Title:       c.Title,
		CreatedAt:   c.CreatedAt,
	}
}

func (app *application) commentViews(list []comments.Comment) []commentView {
	out := make([]commentView, 0, len(list))
	for i := range list {
		out = append(out, app.commentView(&list[i]))
	}
	return out
}

type userView struct {
	ID        string    `json:"id"`
	Alias     string    `json:"alias"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (app *application) userView(u *users.User) userView {
	return userView{
		ID:        app.ids.Encode(u.ID),
		Alias:     u.Alias,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// commentAlias is the name shown on a comment: the local part of the commenter's email.
func commentAlias(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return posts.AliasOrDefault(local)
}
