// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// newsdesk admin API. Routes are grouped by the role required to call them.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadUser(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Login is rate-limited to slow down credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.With(loginLimiter.Middleware).Post("/admin/login", auth.Login)
	r.Post("/admin/logout", auth.Logout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", auth.Me)

		// Reference data for the article editor.
		r.Get("/tags", admin.ListTags)
		r.Get("/categories", admin.ListCategories)

		r.Route("/articles", func(r chi.Router) {
			// Available to every editorial role. Authors are scoped to
			// their own articles inside the service.
			r.Get("/", admin.ListArticles)
			r.Get("/search", admin.SearchArticles)
			r.Post("/", admin.CreateArticle)
			r.Get("/{id}", admin.GetArticle)
			r.Patch("/{id}", admin.UpdateArticle)
			r.Post("/{id}/tags", admin.AssignTags)
			r.Delete("/{id}/tags/{tagId}", admin.RemoveTag)

			// Lifecycle and deletion — editors and admins only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleEditor, models.RoleAdmin))
				r.Patch("/archive", admin.ArchiveArticles)
				r.Patch("/{id}/publish", admin.PublishArticle)
				r.Patch("/{id}/unpublish", admin.UnpublishArticle)
				r.Patch("/{id}/unarchive", admin.UnarchiveArticle)
				r.Delete("/{id}", admin.DeleteArticle)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
