package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/mentor-sessions/backend/internal/auth"
	"github.com/ayush/mentor-sessions/backend/internal/models"
	"github.com/ayush/mentor-sessions/backend/internal/respond"
	"github.com/ayush/mentor-sessions/backend/internal/store"
)

const msgNotFound = "Session not found or unauthorized"

// SessionStore defines the interface for mentor session persistence.
// Update and Delete match on both id and owner and return store.ErrNotFound
// when nothing matches.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	ListByOwner(ctx context.Context, userID string) ([]models.Session, error)
	ListPublished(ctx context.Context) ([]models.Session, error)
	Update(ctx context.Context, userID, id string, u models.SessionUpdate) (*models.Session, error)
	Delete(ctx context.Context, userID, id string) error
}

// Handler holds mentor session HTTP handlers.
type Handler struct {
	store SessionStore
	log   *slog.Logger
}

func NewHandler(store SessionStore, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Publish creates a published session owned by the caller.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.StatusPublished, "Session published successfully", "Error publishing session")
}

// SaveDraft creates a draft session owned by the caller.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.StatusDraft, "Session draft saved successfully", "Error saving draft")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, status models.Status, okMsg, errMsg string) {
	var req models.SessionFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess := &models.Session{
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Date:        req.Date,
		Mentor:      req.Mentor,
		Status:      status,
		UserID:      auth.UserIDFromContext(r.Context()),
	}
	if err := h.store.Create(r.Context(), sess); err != nil {
		respond.ServerError(w, r, h.log, errMsg, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]any{"message": okMsg, "session": sess})
}

// Mine lists every session owned by the caller.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListByOwner(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		respond.ServerError(w, r, h.log, "Failed to fetch sessions", err)
		return
	}
	h.writeList(w, list)
}

// Published lists every published session. It needs no authentication.
func (h *Handler) Published(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListPublished(r.Context())
	if err != nil {
		respond.ServerError(w, r, h.log, "Server error", err)
		return
	}
	h.writeList(w, list)
}

func (h *Handler) writeList(w http.ResponseWriter, list []models.Session) {
	if list == nil {
		list = []models.Session{}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "OK", "sessions": list})
}

// Update overwrites the provided fields of one of the caller's sessions.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := h.store.Update(r.Context(), auth.UserIDFromContext(r.Context()), id, req)
	if errors.Is(err, store.ErrNotFound) {
		respond.Message(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.log, "Error updating session", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"message": "Session updated successfully", "session": sess})
}

// Delete permanently removes one of the caller's sessions.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.store.Delete(r.Context(), auth.UserIDFromContext(r.Context()), id)
	if errors.Is(err, store.ErrNotFound) {
		respond.Message(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		respond.ServerError(w, r, h.log, "Error deleting session", err)
		return
	}
	respond.Message(w, http.StatusOK, "Session deleted successfully")
}
