package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"patitas/internal/domain/pushtokens"
)

type SavePushTokenPayload struct {
	Token      string          `json:"token" validate:"required,max=255"`
	DeviceInfo json.RawMessage `json:"device_info" swaggertype:"object"`
}

type RemovePushTokenPayload struct {
	Token string `json:"token" validate:"required,max=255"`
}

// savePushTokenHandler godoc
//
//	@Summary		Register a device for push notifications
//	@Description	Stores the caller's Expo push token. A token already registered by another account moves to the caller.
//	@Tags			users
//	@Accept			json
//	@Param			payload	body	SavePushTokenPayload	true	"Expo push token"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [put]
func (app *application) savePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload SavePushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.store.PushTokens.Save(r.Context(), user.ID, payload.Token, payload.DeviceInfo)
	if err != nil {
		if errors.Is(err, pushtokens.ErrInvalidToken) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removePushTokenHandler godoc
//
//	@Summary		Unregister a device
//	@Description	Called by the app on sign out. Unknown tokens are ignored.
//	@Tags			users
//	@Accept			json
//	@Param			payload	body	RemovePushTokenPayload	true	"Expo push token"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/push-tokens [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	var payload RemovePushTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.Remove(r.Context(), user.ID, payload.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
