package main

import (
	"context"
	"fmt"
	"net/http"

	"patitas/internal/domain/collection"
	"patitas/internal/domain/likes"
)

func (app *application) toggleLike(ctx context.Context, coll collection.Name, id, userID int64) (*likes.Result, error) {
	switch coll {
	case collection.Advice:
		return app.store.Advice.ToggleLike(ctx, id, userID)
	case collection.Recipes:
		return app.store.Recipes.ToggleLike(ctx, id, userID)
	case collection.Daycares:
		return app.store.Daycares.ToggleLike(ctx, id, userID)
	}
	return nil, fmt.Errorf("unknown collection %q", coll)
}

// toggleLikeHandler godoc
//
//	@Summary		Like or unlike a post
//	@Description	Flips the caller's like. Concurrent toggles on the same post are serialized, so like_count always equals the number of likers.
//	@Tags			posts
//	@Produce		json
//	@Param			id	path		string	true	"Post id"
//	@Success		200	{object}	likes.Result
//	@Failure		401	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/advice/{id}/like [post]
//	@Router			/recipes/{id}/like [post]
//	@Router			/daycares/{id}/like [post]
func (app *application) toggleLikeHandler(coll collection.Name) http.HandlerFunc {
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

		res, err := app.toggleLike(r.Context(), coll, id, user.ID)
		if err != nil {
			app.storeError(w, r, err)
			return
		}

		if err := app.jsonResponse(w, http.StatusOK, res); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}
