package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"patitas/internal/domain/collection"
	"patitas/internal/domain/comments"
	"patitas/internal/notifications"
)

type CreateCommentPayload struct {
	Text   string  `json:"text" validate:"required,max=2000"`
	Rating *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Title  *string `json:"title" validate:"omitnil,max=150"`
}

var errReviewIncomplete = errors.New("a review needs a rating from 1 to 5, a title and a text")

// validate applies the per-collection rules on top of the struct tags: daycare
// reviews need all three fields, other comments carry text only.
func (p *CreateCommentPayload) validate(coll collection.Name) error {
	p.Text = strings.TrimSpace(p.Text)
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}

	if coll == collection.Daycares {
		if p.Rating == nil || p.Title == nil || *p.Title == "" || p.Text == "" {
			return errReviewIncomplete
		}
	} else {
		p.Rating, p.Title = nil, nil
	}

	return Validate.Struct(p)
}

// listCommentsHandler godoc
//
//	@Summary		List comments of a post
//	@Description	Oldest first.
//	@Tags			comments
//	@Produce		json
//	@Param			id	path		string	true	"Post id"
//	@Success		200	{array}		commentView
//	@Failure		404	{object}	error
//	@Router			/advice/{id}/comments [get]
//	@Router			/recipes/{id}/comments [get]
//	@Router			/daycares/{id}/comments [get]
func (app *application) listCommentsHandler(coll collection.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := app.docID(r)
		if err != nil {
			app.notFoundResponse(w, r, err)
			return
		}

		list, err := app.store.Comments.List(r.Context(), coll, id)
		if err != nil {
			app.storeError(w, r, err)
			return
		}

		if err := app.jsonResponse(w, http.StatusOK, app.commentViews(list)); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}

// createCommentHandler godoc
//
//	@Summary		Comment on a post
//	@Description	On daycares this is a review: rating (1-5), title and text are required, and the daycare's comment_count is incremented atomically with the insert.
//	@Tags			comments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Post id"
//	@Param			payload	body		CreateCommentPayload	true	"Comment"
//	@Success		201		{object}	commentView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/advice/{id}/comments [post]
//	@Router			/recipes/{id}/comments [post]
//	@Router			/daycares/{id}/comments [post]
func (app *application) createCommentHandler(coll collection.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := app.currentUser(w, r)
		if !ok {
			return
		}
		id, err := app.docID(r)
		if err != nil {
			app.notFoundResponse(w, r, err)
			return
		}

		var payload CreateCommentPayload
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		if err := payload.validate(coll); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		c := &comments.Comment{
			Collection:  coll,
			ParentID:    id,
			AuthorID:    &user.ID,
			AuthorAlias: commentAlias(user.Email),
			Text:        payload.Text,
			Rating:      payload.Rating,
			Title:       payload.Title,
		}

		if coll == collection.Daycares {
			err = app.store.Comments.CreateWithCounter(r.Context(), c)
		} else {
			err = app.store.Comments.Create(r.Context(), c)
		}
		if err != nil {
			app.storeError(w, r, err)
			return
		}

		app.notifyPostAuthor(c)

		if err := app.jsonResponse(w, http.StatusCreated, app.commentView(c)); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}

// notifyPostAuthor pushes the new comment to the post's author in the background.
// Failures are logged only.
func (app *application) notifyPostAuthor(c *comments.Comment) {
	if app.push == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		authorID, err := app.store.PostAuthor(ctx, c.Collection, c.ParentID)
		if err != nil {
			app.logger.Errorw("comment notification: author lookup failed", "collection", c.Collection, "error", err)
			return
		}
		if authorID == nil || (c.AuthorID != nil && *authorID == *c.AuthorID) {
			return
		}

		err = notifications.SendCommentNotification(ctx, app.push, app.store.PushTokens, *authorID, notifications.CommentEvent{
			Collection:     c.Collection,
			PostID:         app.ids.Encode(c.ParentID),
			CommenterAlias: c.AuthorAlias,
			Rating:         c.Rating,
		})
		if err != nil && !errors.Is(err, notifications.ErrNoTokens) {
			app.logger.Errorw("comment notification failed", "user_id", *authorID, "error", err)
		}
	}()
}
