package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(app.Http.MethodNotAllowed)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.Cors.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/token", app.obtainToken)
		})
		r.Route("/users", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/me", app.getMe)
			r.Patch("/me", app.updateMe)
			r.Get("/", app.listUsers)
			r.Post("/", app.createUser)
			r.Get("/{username}", app.getUser)
			r.Patch("/{username}", app.updateUser)
			r.Delete("/{username}", app.deleteUser)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Use(app.requireWriteAuth)
			r.Get("/", listTaxonomy(app, app.services.Categories))
			r.Post("/", createTaxonomy(app, app.services.Categories, "category"))
			r.Delete("/{slug}", deleteTaxonomy(app, app.services.Categories))
		})
		r.Route("/genres", func(r chi.Router) {
			r.Use(app.requireWriteAuth)
			r.Get("/", listTaxonomy(app, app.services.Genres))
			r.Post("/", createTaxonomy(app, app.services.Genres, "genre"))
			r.Delete("/{slug}", deleteTaxonomy(app, app.services.Genres))
		})
		r.Route("/titles", func(r chi.Router) {
			r.Use(app.requireWriteAuth)
			r.Get("/", app.listTitles)
			r.Post("/", app.createTitle)
			r.Route("/{title_id}", func(r chi.Router) {
				r.Get("/", app.getTitle)
				r.Patch("/", app.updateTitle)
				r.Delete("/", app.deleteTitle)
				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.listReviews)
					r.Post("/", app.createReview)
					r.Route("/{review_id}", func(r chi.Router) {
						r.Get("/", app.getReview)
						r.Patch("/", app.updateReview)
						r.Delete("/", app.deleteReview)
						r.Route("/comments", func(r chi.Router) {
							r.Get("/", app.listComments)
							r.Post("/", app.createComment)
							r.Get("/{comment_id}", app.getComment)
							r.Patch("/{comment_id}", app.updateComment)
							r.Delete("/{comment_id}", app.deleteComment)
						})
					})
				})
			})
		})
	})
	return router
}
