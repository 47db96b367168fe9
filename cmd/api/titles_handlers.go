package main

import (
	"net/http"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/services/titles"
)

func (app *Application) listTitles(w http.ResponseWriter, r *http.Request) {
	var tf filters.TitleFilter
	if !app.readQuery(w, r, &tf) {
		return
	}
	f, ok := app.readFilters(w, r)
	if !ok {
		return
	}
	list, total, err := app.services.Titles.List(r.Context(), tf, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, listResponse(list, total, f), "")
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	title, err := app.services.Titles.Get(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) createTitle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string   `json:"name" validate:"required,min=1,max=256"`
		Year        *int32    `json:"year" validate:"required,gte=0,notfutureyear"`
		Description *string   `json:"description"`
		Category    *string   `json:"category" validate:"required,slug"`
		Genre       *[]string `json:"genre" validate:"omitempty,dive,slug"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	title, err := app.services.Titles.Create(r.Context(), app.currentUser(r), titles.Input{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"title": title}, "")
}

func (app *Application) updateTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	var req struct {
		Name        *string   `json:"name" validate:"omitempty,min=1,max=256"`
		Year        *int32    `json:"year" validate:"omitempty,gte=0,notfutureyear"`
		Description *string   `json:"description"`
		Category    *string   `json:"category" validate:"omitempty,slug"`
		Genre       *[]string `json:"genre" validate:"omitempty,dive,slug"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	title, err := app.services.Titles.Update(r.Context(), app.currentUser(r), id, titles.Input{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Category:    req.Category,
		Genres:      req.Genre,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": title}, "")
}

func (app *Application) deleteTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	if err := app.services.Titles.Delete(r.Context(), app.currentUser(r), id); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
