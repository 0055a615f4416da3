package main

import (
	"net/http"

	"patitas/internal/domain/daycares"
)

type CreateDaycarePayload struct {
	Name          string `json:"name" validate:"required,max=150"`
	Neighborhood  string `json:"neighborhood" validate:"required,max=100"`
	Address       string `json:"address" validate:"required,max=255"`
	Service       string `json:"service" validate:"required,daycare_service"`
	RatingLabel   string `json:"rating_label" validate:"required,rating_label"`
	PetTreatment  string `json:"pet_treatment" validate:"required,max=5000"`
	ExtraComments string `json:"extra_comments" validate:"max=5000"`
}

type UpdateDaycarePayload struct {
	Name          *string `json:"name" validate:"omitnil,min=1,max=150"`
	Neighborhood  *string `json:"neighborhood" validate:"omitnil,min=1,max=100"`
	Address       *string `json:"address" validate:"omitnil,min=1,max=255"`
	Service       *string `json:"service" validate:"omitnil,daycare_service"`
	RatingLabel   *string `json:"rating_label" validate:"omitnil,rating_label"`
	PetTreatment  *string `json:"pet_treatment" validate:"omitnil,min=1,max=5000"`
	ExtraComments *string `json:"extra_comments" validate:"omitnil,max=5000"`
}

func (p UpdateDaycarePayload) updates() map[string]any {
	u := map[string]any{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Neighborhood != nil {
		u["neighborhood"] = *p.Neighborhood
	}
	if p.Address != nil {
		u["address"] = *p.Address
	}
	if p.Service != nil {
		u["service"] = *p.Service
	}
	if p.RatingLabel != nil {
		u["rating_label"] = *p.RatingLabel
	}
	if p.PetTreatment != nil {
		u["pet_treatment"] = *p.PetTreatment
	}
	if p.ExtraComments != nil {
		u["extra_comments"] = *p.ExtraComments
	}
	return u
}

// createDaycareHandler godoc
//
//	@Summary		Publish a daycare
//	@Description	Daycare posts carry no alias; reviews go through the comments endpoint.
//	@Tags			daycares
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateDaycarePayload	true	"Daycare"
//	@Success		201		{object}	daycareView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		401		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/daycares [post]
func (app *application) createDaycareHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload CreateDaycarePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	d := &daycares.Daycare{
		Name:          payload.Name,
		Neighborhood:  payload.Neighborhood,
		Address:       payload.Address,
		Service:       payload.Service,
		RatingLabel:   payload.RatingLabel,
		PetTreatment:  payload.PetTreatment,
		ExtraComments: payload.ExtraComments,
		AuthorID:      &user.ID,
	}
	if err := app.store.Daycares.Create(r.Context(), d); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, app.daycareView(d, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getDaycareHandler godoc
//
//	@Summary		Get a daycare by id
//	@Tags			daycares
//	@Produce		json
//	@Param			id	path		string	true	"Daycare id"
//	@Success		200	{object}	daycareView
//	@Failure		404	{object}	error
//	@Router			/daycares/{id} [get]
func (app *application) getDaycareHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	d, err := app.store.Daycares.GetByID(r.Context(), id)
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.daycareView(d, viewerID(r))); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateDaycareHandler godoc
//
//	@Summary		Edit a daycare
//	@Description	Only the author may edit.
//	@Tags			daycares
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Daycare id"
//	@Param			payload	body		UpdateDaycarePayload	true	"Fields to change"
//	@Success		200		{object}	daycareView
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		403		{object}	error
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/daycares/{id} [patch]
func (app *application) updateDaycareHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	var payload UpdateDaycarePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	d, err := app.store.Daycares.Update(r.Context(), id, user.ID, payload.updates())
	if err != nil {
		app.storeError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.daycareView(d, user.ID)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteDaycareHandler godoc
//
//	@Summary		Delete a daycare
//	@Description	Only the author may delete. Its comments are deleted too.
//	@Tags			daycares
//	@Param			id	path	string	true	"Daycare id"
//	@Success		204
//	@Failure		403	{object}	error
//	@Failure		404	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/daycares/{id} [delete]
func (app *application) deleteDaycareHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}
	id, err := app.docID(r)
	if err != nil {
		app.notFoundResponse(w, r, err)
		return
	}

	if err := app.store.Daycares.Delete(r.Context(), id, user.ID); err != nil {
		app.storeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
