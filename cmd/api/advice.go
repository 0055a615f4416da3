package main

import (
	"net/http"

	"patitas/internal/domain/advice"
	"patitas/internal/domain/posts"
)

type CreateAdvicePayload struct {
	Title       string `json:"title" validate:"required,max=150"`
	Alias       string `json:"alias" validate:"max=50"`
	Category    string `json:"category" validate:"required,advice_category"`
	Description string `json:"description" validate:"required,max=5000"`
	PetType     string `json:"pet_type" validate:"required,max=50"`
}

// UpdateAdvicePayload mirrors the edit screen: every field optional.
type UpdateAdvicePayload struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=150"`
	Alias       *string `json:"alias" validate:"omitnil,max=50"`
	Category    *string `json:"category" validate:"omitnil,advice_category"`
	Description *string `json:"description" validate:"omitnil,min=1,max=5000"`
	PetType     *string `json:"pet_type" validate:"omitnil,min=1,max=50"`
}

func (p UpdateAdvicePayload) updates() map[string]any {
	u := map[string]any{}
	if p.Title != nil {
		u["title"] = *p.Title
	}
	if p.Alias != nil {
		u["alias"] = posts.AliasOrDefault(*p.Alias)
	}
	if p.Category != nil {
		u["category"] = *p.Category
	}
	if p.Description != nil {
		u["description"] = *p.Description
	}
	if p.PetType != nil {
		u["pet_type"] = *p.PetType
	}
	return u
}

// createAdviceHandler godoc
//
//	@Summary		Publish advice
//	@Description	A blank alias is published as "Anónimo".
//	@Tags			advice
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateAdvicePayload	true	"Advice"
//	@Success		201		{object}	adviceView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/advice [post]
func (app *application) createAdviceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload CreateAdvicePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a := &advice.Advice{
		Title:       payload.Title,
		Alias:       posts.AliasOrDefault(payload.Alias),
		Category:    payload.Category,
		Description: payload.Description,
		PetType:     payload.PetType,
		AuthorID:    &user.ID,
	}
	if err := app.store.Advice.Create(r.Context(), a); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, app.adviceView(a, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAdviceHandler godoc
//
//	@Summary		Get advice by id
//	@Tags			advice
//	@Produce		json
//	@Param			id	path		string	true	"Advice id"
//	@Success		200	{object}	adviceView
//	@Failure		404	{object}	error
//	@Router			/advice/{id} [get]
func (app *application) getAdviceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	a, err := app.store.Advice.GetByID(r.Context(), id)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.adviceView(a, viewerID(r))); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateAdviceHandler godoc
//
//	@Summary		Edit advice
//	@Description	Only the author may edit.
//	@Tags			advice
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Advice id"
//	@Param			payload	body		UpdateAdvicePayload	true	"Fields to change"
//	@Success		200		{object}	adviceView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/advice/{id} [patch]
func (app *application) updateAdviceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var payload UpdateAdvicePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	a, err := app.store.Advice.Update(r.Context(), id, user.ID, payload.updates())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.adviceView(a, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteAdviceHandler godoc
//
//	@Summary		Delete advice
//	@Description	Only the author may delete. Its comments are deleted too.
//	@Tags			advice
//	@Param			id	path	string	true	"Advice id"
//	@Success		204
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/advice/{id} [delete]
func (app *application) deleteAdviceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	if err := app.store.Advice.Delete(r.Context(), id, user.ID); err != nil {
		app.storeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
