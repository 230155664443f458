package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/planitapp/planit-api/internal/api/middleware"
	"github.com/planitapp/planit-api/internal/api/shared"
)

// setupRouter configures the HTTP routes and middleware chain.
func (app *application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(middleware.MetricsMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints.
		r.Post("/auth/register", app.authHandler.Register)
		r.Post("/auth/login", app.authHandler.Login)
		r.Post("/auth/refresh", app.authHandler.RefreshToken)

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", app.categoryHandler.Create)
				r.Get("/", app.categoryHandler.List)
				r.Get("/{id}", app.categoryHandler.Get)
				r.Put("/{id}", app.categoryHandler.Update)
				r.Delete("/{id}", app.categoryHandler.Delete)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Post("/", app.goalHandler.Create)
				r.Get("/", app.goalHandler.List)
				r.Get("/{id}", app.goalHandler.Get)
				r.Put("/{id}", app.goalHandler.Update)
				r.Delete("/{id}", app.goalHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", app.taskHandler.Create)
				r.Get("/", app.taskHandler.List)
				r.Get("/stats", app.taskHandler.Stats)
				r.Get("/{id}", app.taskHandler.Get)
				r.Put("/{id}", app.taskHandler.Update)
				r.Delete("/{id}", app.taskHandler.Delete)
			})

			r.Get("/notifications", app.taskHandler.ListNotifications)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
