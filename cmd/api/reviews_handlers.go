package main

import (
	"net/http"
)

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r)
	if !ok {
		return
	}
	list, total, err := app.services.Reviews.List(r.Context(), titleID, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, listResponse(list, total, f), "")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	review, err := app.services.Reviews.Get(r.Context(), titleID, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	var req struct {
		Text  string `json:"text" validate:"required"`
		Score int    `json:"score" validate:"required,gte=1,lte=10" errorMsg:"Score must be between 1 and 10"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	review, err := app.services.Reviews.Create(r.Context(), app.currentUser(r), titleID, req.Text, req.Score)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	var req struct {
		Text  *string `json:"text" validate:"omitempty,min=1"`
		Score *int    `json:"score" validate:"omitempty,gte=1,lte=10" errorMsg:"Score must be between 1 and 10"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	review, err := app.services.Reviews.Update(r.Context(), app.currentUser(r), titleID, id, req.Text, req.Score)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := app.extractIDParam(w, r, "title_id")
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "review_id")
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), app.currentUser(r), titleID, id); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

// reviewPath extracts the title and review ids every comment route nests under.
func (app *Application) reviewPath(w http.ResponseWriter, r *http.Request) (titleID, reviewID int64, ok bool) {
	if titleID, ok = app.extractIDParam(w, r, "title_id"); !ok {
		return
	}
	reviewID, ok = app.extractIDParam(w, r, "review_id")
	return
}

func (app *Application) listComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r)
	if !ok {
		return
	}
	list, total, err := app.services.Comments.List(r.Context(), titleID, reviewID, f)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, listResponse(list, total, f), "")
}

func (app *Application) getComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "comment_id")
	if !ok {
		return
	}
	comment, err := app.services.Comments.Get(r.Context(), titleID, reviewID, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) createComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text" validate:"required"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := app.services.Comments.Create(r.Context(), app.currentUser(r), titleID, reviewID, req.Text)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"comment": comment}, "")
}

func (app *Application) updateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "comment_id")
	if !ok {
		return
	}
	var req struct {
		Text *string `json:"text" validate:"omitempty,min=1"`
	}
	if !app.decodeAndValidate(w, r, &req) {
		return
	}
	comment, err := app.services.Comments.Update(r.Context(), app.currentUser(r), titleID, reviewID, id, req.Text)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"comment": comment}, "")
}

func (app *Application) deleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := app.reviewPath(w, r)
	if !ok {
		return
	}
	id, ok := app.extractIDParam(w, r, "comment_id")
	if !ok {
		return
	}
	if err := app.services.Comments.Delete(r.Context(), app.currentUser(r), titleID, reviewID, id); err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}
