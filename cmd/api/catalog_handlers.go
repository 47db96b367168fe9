package main

import (
	"context"
	"net/http"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
)

type taxonomyService[T any] interface {
	List(ctx context.Context, search string, f filters.Filters) ([]T, int, error)
	Create(ctx context.Context, actor *models.User, name, slug string) (*T, error)
	Delete(ctx context.Context, actor *models.User, slug string) error
}

// Categories and genres share one set of handlers, keyed by the name the
// created object is returned under.

func listTaxonomy[T any](app *Application, svc taxonomyService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			Search string `schema:"search" validate:"max=256"`
		}
		if !app.readQuery(w, r, &query) {
			return
		}
		f, ok := app.readFilters(w, r)
		if !ok {
			return
		}
		items, total, err := svc.List(r.Context(), query.Search, f)
		if err != nil {
			app.serviceError(w, r, err)
			return
		}
		app.Http.Ok(w, r, listResponse(items, total, f), "")
	}
}

func createTaxonomy[T any](app *Application, svc taxonomyService[T], key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name" validate:"required,max=256"`
			Slug string `json:"slug" validate:"required,max=50,slug"`
		}
		if !app.decodeAndValidate(w, r, &req) {
			return
		}
		item, err := svc.Create(r.Context(), app.currentUser(r), req.Name, req.Slug)
		if err != nil {
			app.serviceError(w, r, err)
			return
		}
		app.Http.Created(w, r, envelop{key: item}, "")
	}
}

func deleteTaxonomy[T any](app *Application, svc taxonomyService[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), app.currentUser(r), chi.URLParam(r, "slug")); err != nil {
			app.serviceError(w, r, err)
			return
		}
		app.Http.NoContent(w, r)
	}
}
