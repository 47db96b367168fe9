package main

import (
	"errors"
	"net/http"
	"yamdb/proj/internal/domain/errs"
)

// serviceError writes the response for an error returned by a service.
func (app *Application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldsErr *errs.FieldsError
	switch {
	case errors.As(err, &fieldsErr):
		app.Http.ValidationFailed(w, r, fieldsErr.Fields)
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrConflict):
		app.Http.BadRequest(w, r, err.Error())
	case errors.Is(err, errs.ErrUnauthenticated):
		app.Http.Unauthorized(w, r, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		app.Http.Forbidden(w, r, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, errs.ErrUnavailable):
		app.Http.ServiceUnavailable(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
