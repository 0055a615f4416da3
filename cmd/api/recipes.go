package main

import (
	"net/http"

	"patitas/internal/domain/posts"
	"patitas/internal/domain/recipes"
)

type CreateRecipePayload struct {
	Name        string `json:"name" validate:"required,max=150"`
	Alias       string `json:"alias" validate:"max=50"`
	RecipeType  string `json:"recipe_type" validate:"required,recipe_type"`
	PetType     string `json:"pet_type" validate:"required,pet_type"`
	Ingredients string `json:"ingredients" validate:"required,max=5000"`
	Preparation string `json:"preparation" validate:"required,max=10000"`
}

type UpdateRecipePayload struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=150"`
	Alias       *string `json:"alias" validate:"omitnil,max=50"`
	RecipeType  *string `json:"recipe_type" validate:"omitnil,recipe_type"`
	PetType     *string `json:"pet_type" validate:"omitnil,pet_type"`
	Ingredients *string `json:"ingredients" validate:"omitnil,min=1,max=5000"`
	Preparation *string `json:"preparation" validate:"omitnil,min=1,max=10000"`
}

func (p UpdateRecipePayload) updates() map[string]any {
	u := map[string]any{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Alias != nil {
		u["alias"] = posts.AliasOrDefault(*p.Alias)
	}
	if p.RecipeType != nil {
		u["recipe_type"] = *p.RecipeType
	}
	if p.PetType != nil {
		u["pet_type"] = *p.PetType
	}
	if p.Ingredients != nil {
		u["ingredients"] = *p.Ingredients
	}
	if p.Preparation != nil {
		u["preparation"] = *p.Preparation
	}
	return u
}

// createRecipeHandler godoc
//
//	@Summary		Publish a recipe
//	@Description	A blank alias is published as "Anónimo".
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateRecipePayload	true	"Recipe"
//	@Success		201		{object}	recipeView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/recipes [post]
func (app *application) createRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload CreateRecipePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rc := &recipes.Recipe{
		Name:        payload.Name,
		Alias:       posts.AliasOrDefault(payload.Alias),
		RecipeType:  payload.RecipeType,
		PetType:     payload.PetType,
		Ingredients: payload.Ingredients,
		Preparation: payload.Preparation,
		AuthorID:    &user.ID,
	}
	if err := app.store.Recipes.Create(r.Context(), rc); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, app.recipeView(rc, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRecipeHandler godoc
//
//	@Summary		Get a recipe by id
//	@Tags			recipes
//	@Produce		json
//	@Param			id	path		string	true	"Recipe id"
//	@Success		200	{object}	recipeView
//	@Failure		404	{object}	error
//	@Router			/recipes/{id} [get]
func (app *application) getRecipeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	rc, err := app.store.Recipes.GetByID(r.Context(), id)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.recipeView(rc, viewerID(r))); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRecipeHandler godoc
//
//	@Summary		Edit a recipe
//	@Description	Only the author may edit.
//	@Tags			recipes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Recipe id"
//	@Param			payload	body		UpdateRecipePayload	true	"Fields to change"
//	@Success		200		{object}	recipeView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/recipes/{id} [patch]
func (app *application) updateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var payload UpdateRecipePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rc, err := app.store.Recipes.Update(r.Context(), id, user.ID, payload.updates())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.recipeView(rc, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRecipeHandler godoc
//
//	@Summary		Delete a recipe
//	@Description	Only the author may delete. Its comments are deleted too.
//	@Tags			recipes
//	@Param			id	path	string	true	"Recipe id"
//	@Success		204
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/recipes/{id} [delete]
func (app *application) deleteRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	if err := app.store.Recipes.Delete(r.Context(), id, user.ID); err != nil {
		app.storeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
