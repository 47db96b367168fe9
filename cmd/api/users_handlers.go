package main

import (
	"net/http"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/services/users"

	"github.com/go-chi/chi/v5"
)

type userPatchRequest struct {
	Username  *string      `json:"username" validate:"omitempty,max=150,username,notreserved"`
	Email     *string      `json:"email" validate:"omitempty,max=254,email"`
	FirstName *string      `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string      `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (req userPatchRequest) patch() users.Patch {
	return users.Patch{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	}
}

func (app *Application) listUsers(w http.ResponseWriter, r *http.Request) {
	var query struct {
		Search string `schema:"search" validate:"max=150"`
	}
	if !app.readQuery(w, r, &query) {
		return
	}
	f, ok := app.readFilters(w, r)
	if !ok {
		return
	}
	list, total, err := app.services.Users.List(r.Context(), app.currentUser(r), query.Search, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, listResponse(list, total, f), "")
}

func (app *Application) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string      `json:"username" validate:"required,max=150,username,notreserved"`
		Email     string      `json:"email" validate:"required,max=254,email"`
		FirstName string      `json:"first_name" validate:"max=150"`
		LastName  string      `json:"last_name" validate:"max=150"`
		Bio       string      `json:"bio"`
		Role      models.Role `json:"role" validate:"omitempty,oneof=user moderator admin"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Users.Create(r.Context(), app.currentUser(r), &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      req.Role,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"user": user}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.Get(r.Context(), app.currentUser(r), chi.URLParam(r, "username"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	var req userPatchRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Users.Update(r.Context(), app.currentUser(r), chi.URLParam(r, "username"), req.patch())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := app.services.Users.Delete(r.Context(), app.currentUser(r), chi.URLParam(r, "username")); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := app.services.Users.GetMe(r.Context(), app.currentUser(r))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateMe(w http.ResponseWriter, r *http.Request) {
	var req userPatchRequest
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	user, err := app.services.Users.UpdateMe(r.Context(), app.currentUser(r), req.patch())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}
