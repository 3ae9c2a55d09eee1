// Package router sets up all HTTP routes and middleware chains for the
// taxonomy API. Routes are grouped into open (health, login) and
// token-protected (categories, 2FA) sets.
package router

import (
	"github.com/go-chi/chi/v5"

	"jacms/internal/handlers"
	"jacms/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(categories *handlers.Categories, auth *handlers.Auth, secret []byte, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	// Health check — no auth.
	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		// Token issuance — the only open endpoint.
		r.Post("/auth/login", auth.Login)

		// 2FA enrollment — requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(secret))
			r.Post("/auth/2fa/setup", auth.TwoFASetup)
			r.Post("/auth/2fa/verify", auth.TwoFAVerify)
		})

		// Category management.
		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.RequireToken(secret))

			r.Get("/", categories.List)
			r.Get("/root", categories.Roots)
			r.Get("/slug/{slug}", categories.GetBySlug)
			r.Get("/{id}", categories.Get)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})
	})

	return r
}
