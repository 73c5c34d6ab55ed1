package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ayush/mentor-sessions/backend/internal/auth"
	"github.com/ayush/mentor-sessions/backend/internal/respond"
)

// TokenAuthenticator validates a raw bearer token.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, raw string) (*auth.Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return ""
	}
	return token
}

// RequireAuth is middleware that validates the bearer token and
// injects the caller's claims into the request context.
func RequireAuth(authn TokenAuthenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				respond.Message(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := authn.Authenticate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrTokenExpired),
				errors.Is(err, auth.ErrTokenInvalid),
				errors.Is(err, auth.ErrTokenRevoked):
				respond.Message(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			default:
				respond.ServerError(w, r, log, "Server error", err)
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
