package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/mentor-sessions/backend/internal/models"
	"github.com/ayush/mentor-sessions/backend/internal/respond"
	"github.com/ayush/mentor-sessions/backend/internal/store"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	creds *Credentials
	authn *Authenticator
	log   *slog.Logger
}

func NewHandler(creds *Credentials, authn *Authenticator, log *slog.Logger) *Handler {
	return &Handler{creds: creds, authn: authn, log: log}
}

func decodeCredentials(r *http.Request) (models.Credentials, bool) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, false
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, true
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	_, err := h.creds.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		respond.Message(w, http.StatusCreated, "User registered successfully")
	case errors.Is(err, store.ErrDuplicateEmail):
		respond.Message(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		respond.Message(w, http.StatusBadRequest, "password is too long")
	default:
		respond.ServerError(w, r, h.log, "Server error", err)
	}
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	userID, err := h.creds.Verify(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrUserNotFound):
		respond.Message(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, ErrInvalidCredentials):
		respond.Message(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		respond.ServerError(w, r, h.log, "Server error", err)
		return
	}

	token, claims, err := h.authn.tokens.Issue(userID)
	if err != nil {
		respond.ServerError(w, r, h.log, "Server error", err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"message":    "Login successful",
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
	})
}

// Logout revokes the presented token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if err := h.authn.Revoke(r.Context(), claims); err != nil {
		respond.ServerError(w, r, h.log, "Server error", err)
		return
	}
	respond.Message(w, http.StatusOK, "Logged out")
}

// Me returns the currently authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		respond.Message(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.creds.User(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		respond.Message(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.log, "Server error", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "OK", "user": user})
}
