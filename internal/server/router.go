// Package server assembles the HTTP router from explicitly constructed
// dependencies.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ayush/mentor-sessions/backend/internal/auth"
	"github.com/ayush/mentor-sessions/backend/internal/middleware"
	"github.com/ayush/mentor-sessions/backend/internal/sessions"
)

// Deps is everything the router needs. Nothing is read from globals.
type Deps struct {
	Users    auth.UserStore
	Sessions sessions.SessionStore
	Tokens   *auth.Tokens
	Revoker  auth.Revoker // optional
	Logger   *slog.Logger
}

// NewRouter builds the full route table.
func NewRouter(d Deps) http.Handler {
	authn := auth.NewAuthenticator(d.Tokens, d.Revoker)
	authHandler := auth.NewHandler(auth.NewCredentials(d.Users), authn, d.Logger)
	sessionHandler := sessions.NewHandler(d.Sessions, d.Logger)
	requireAuth := middleware.RequireAuth(authn, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.With(requireAuth).Post("/logout", authHandler.Logout)
	r.With(requireAuth).Get("/me", authHandler.Me)

	// Public catalog
	r.Get("/sessions", sessionHandler.Published)

	// Owner-scoped sessions (protected)
	r.Route("/my-sessions", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", sessionHandler.Mine)
		r.Post("/publish", sessionHandler.Publish)
		r.Post("/save-draft", sessionHandler.SaveDraft)
		r.Put("/{id}", sessionHandler.Update)
		r.Delete("/{id}", sessionHandler.Delete)
	})

	return r
}
