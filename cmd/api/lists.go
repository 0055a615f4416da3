package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"patitas/internal/domain/advice"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/recipes"
	"patitas/internal/domain/users"
	"patitas/internal/params"
)

var errAuthorRequiresLogin = errors.New("author=me requires authentication")

// filterKeys are the exact-match query filters each collection listing accepts.
func filterKeys(coll collection.Name) []string {
	switch coll {
	case collection.Advice:
		return []string{"category", "pet_type"}
	case collection.Recipes:
		return []string{"recipe_type", "pet_type"}
	case collection.Daycares:
		return []string{"service", "neighborhood"}
	}
	return nil
}

// queryCollection runs a listing, newest first, as seen by viewer (nil for anonymous).
func (app *application) queryCollection(ctx context.Context, coll collection.Name, lq params.ListQuery, viewer *users.User) (listResponse, error) {
	var authorID *int64
	var vid int64
	if viewer != nil {
		vid = viewer.ID
	}
	if lq.Mine {
		if viewer == nil {
			return listResponse{}, errAuthorRequiresLogin
		}
		authorID = &viewer.ID
	}

	page := lq.Pagination
	var items any
	var total int

	switch coll {
	case collection.Advice:
		list, n, err := app.store.Advice.List(ctx, advice.Filter{
			AuthorID: authorID,
			Category: lq.Filters["category"],
			PetType:  lq.Filters["pet_type"],
			Limit:    page.Limit,
			Offset:   page.Offset,
		})
		if err != nil {
			return listResponse{}, err
		}
		views := make([]adviceView, 0, len(list))
		for i := range list {
			views = append(views, app.adviceView(&list[i], vid))
		}
		items, total = views, n

	case collection.Recipes:
		list, n, err := app.store.Recipes.List(ctx, recipes.Filter{
			AuthorID:   authorID,
			RecipeType: lq.Filters["recipe_type"],
			PetType:    lq.Filters["pet_type"],
			Limit:      page.Limit,
			Offset:     page.Offset,
		})
		if err != nil {
			return listResponse{}, err
		}
		views := make([]recipeView, 0, len(list))
		for i := range list {
			views = append(views, app.recipeView(&list[i], vid))
		}
		items, total = views, n

	case collection.Daycares:
		list, n, err := app.store.Daycares.List(ctx, daycares.Filter{
			AuthorID:     authorID,
			Service:      lq.Filters["service"],
			Neighborhood: lq.Filters["neighborhood"],
			Limit:        page.Limit,
			Offset:       page.Offset,
		})
		if err != nil {
			return listResponse{}, err
		}
		views := make([]daycareView, 0, len(list))
		for i := range list {
			views = append(views, app.daycareView(&list[i], vid))
		}
		items, total = views, n

	default:
		return listResponse{}, fmt.Errorf("unknown collection %q", coll)
	}

	page.ComputeMeta(total)
	return listResponse{Items: items, Pagination: page}, nil
}

// listHandler godoc
//
//	@Summary		List posts of a collection
//	@Description	Newest first. author=me lists the caller's own posts and needs a token. Filters: category and pet_type (advice), recipe_type and pet_type (recipes), service and neighborhood (daycares).
//	@Tags			posts
//	@Produce		json
//	@Param			author	query		string	false	"me"
//	@Param			page	query		int		false	"Page number"	default(1)
//	@Param			limit	query		int		false	"Page size"		default(15)
//	@Success		200		{object}	listResponse
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Router			/advice [get]
//	@Router			/recipes [get]
//	@Router			/daycares [get]
func (app *application) listHandler(coll collection.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lq, err := params.ParseListQuery(r.URL.Query(), filterKeys(coll)...)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}

		resp, err := app.queryCollection(r.Context(), coll, lq, getUserFromContext(r))
		if err != nil {
			if errors.Is(err, errAuthorRequiresLogin) {
				app.unauthorizedErrorResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}

		if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
			app.internalServerError(w, r, err)
		}
	}
}
