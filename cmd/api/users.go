package main

import "net/http"

// getCurrentUserHandler godoc
//
//	@Summary		Current user
//	@Description	Returns the account behind the access token.
//	@Tags			users
//	@Produce		json
//	@Success		200	{object}	userView
//	@Failure		401	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/me [get]
func (app *application) getCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.userView(user)); err != nil {
		app.internalServerError(w, r, err)
	}
}
