package main

import (
	"net/http"
)

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required,max=150,username,notreserved"`
		Email    string `json:"email" validate:"required,max=254,email"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Auth.Signup(r.Context(), req.Username, req.Email)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"username": user.Username, "email": user.Email}, "Confirmation code sent")
}

func (app *Application) obtainToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username         string `json:"username" validate:"required,max=150"`
		ConfirmationCode string `json:"confirmation_code" validate:"required,max=64"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	token, err := app.services.Auth.ObtainToken(r.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"token": token}, "")
}
