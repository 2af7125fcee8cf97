// Package router sets up all HTTP routes and middleware chains for the
// LinguaBlog API. Routes are grouped into public reads, authenticated
// writes and admin-only administration.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"linguablog/internal/auth"
	"linguablog/internal/handlers"
	"linguablog/internal/middleware"
)

// Options tunes the router without threading the whole config through.
type Options struct {
	AuthConfig auth.Config
	// ReactionRateLimit is the per-client request budget per minute on
	// the reaction endpoints.
	ReactionRateLimit int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h *handlers.Handler, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Authenticate(opts.AuthConfig))

	// Health check.
	r.Get("/health", healthHandler)

	reactLimiter := middleware.NewRateLimiter(opts.ReactionRateLimit, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.With(middleware.RequireAuth).Get("/auth/me", h.Me)

		// Posts
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.With(middleware.RequireAuth).Post("/", h.CreatePost)

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", h.GetPost)
				r.With(middleware.RequireAuth).Patch("/", h.UpdatePost)
				r.With(middleware.RequireAuth).Delete("/", h.DeletePost)

				// Comments
				r.Get("/comments", h.ListComments)
				r.With(middleware.RequireAuth).Post("/comments", h.CreateComment)

				// Reactions
				r.Get("/reactions", h.GetPostReactions)
				r.With(middleware.RequireAuth, reactLimiter.Middleware).
					Post("/react", h.ReactToPost)
			})
		})

		// Comments (moderation and comment reactions)
		r.Route("/comments/{id}", func(r chi.Router) {
			r.With(middleware.RequireAuth).Delete("/", h.DeleteComment)
			r.Get("/reactions", h.GetCommentReactions)
			r.With(middleware.RequireAuth, reactLimiter.Middleware).
				Post("/react", h.ReactToComment)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{slug}", h.GetCategory)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.CreateCategory)
				r.Patch("/{slug}", h.UpdateCategory)
				r.Delete("/{slug}", h.DeleteCategory)
			})
		})

		// Tags
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.ListTags)
			r.Get("/{slug}", h.GetTag)
			r.With(middleware.RequireAuth).Delete("/{slug}", h.DeleteTag)
		})

		// Translation proxy
		r.With(middleware.RequireAuth).Post("/translate", h.Translate)

		// Role administration — admin only.
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", h.ListUsers)
			r.Put("/{id}/roles", h.AssignRoles)
		})
		r.With(middleware.RequireAdmin).Get("/roles", h.ListRoles)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
