package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/mentor-sessions/backend/internal/auth"
	"github.com/ayush/mentor-sessions/backend/internal/models"
	"github.com/ayush/mentor-sessions/backend/internal/store"
)

// asUser stands in for the auth gate: it trusts the X-User header.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := auth.ContextWithClaims(r.Context(), &auth.Claims{UserID: r.Header.Get("X-User")})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRouter(st SessionStore) http.Handler {
	h := NewHandler(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/sessions", h.Published)
	r.Group(func(r chi.Router) {
		r.Use(asUser)
		r.Get("/my-sessions", h.Mine)
		r.Post("/my-sessions/publish", h.Publish)
		r.Post("/my-sessions/save-draft", h.SaveDraft)
		r.Put("/my-sessions/{id}", h.Update)
		r.Delete("/my-sessions/{id}", h.Delete)
	})
	return r
}

type result struct {
	Message  string           `json:"message"`
	Session  *models.Session  `json:"session"`
	Sessions []models.Session `json:"sessions"`
}

func do(t *testing.T, h http.Handler, method, path, user, body string) (int, result) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-User", user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestCreate_SetsStatusAndOwner(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	code, res := do(t, h, http.MethodPost, "/my-sessions/publish", "u1", `{"title":"Go 101","mentor":"Ann"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Session published successfully", res.Message)
	require.NotNil(t, res.Session)
	assert.Equal(t, models.StatusPublished, res.Session.Status)
	assert.Equal(t, "u1", res.Session.UserID)
	assert.Equal(t, "Go 101", res.Session.Title)
	assert.NotEmpty(t, res.Session.ID)

	code, res = do(t, h, http.MethodPost, "/my-sessions/save-draft", "u1", `{"title":"WIP"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, models.StatusDraft, res.Session.Status)
	assert.Equal(t, "u1", res.Session.UserID)
	assert.Empty(t, res.Session.Description)
}

func TestCreate_StatusInBodyIsIgnored(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	_, res := do(t, h, http.MethodPost, "/my-sessions/save-draft", "u1", `{"title":"x","status":"published"}`)
	assert.Equal(t, models.StatusDraft, res.Session.Status)
}

func TestCreate_BadBody(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	code, _ := do(t, h, http.MethodPost, "/my-sessions/publish", "u1", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPublished_ExcludesDrafts(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	for i, path := range []string{"publish", "save-draft", "save-draft", "publish", "save-draft"} {
		user := []string{"u1", "u2"}[i%2]
		code, _ := do(t, h, http.MethodPost, "/my-sessions/"+path, user, `{"title":"t"}`)
		require.Equal(t, http.StatusCreated, code)
	}

	code, res := do(t, h, http.MethodGet, "/sessions", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, res.Sessions, 2)
	for _, s := range res.Sessions {
		assert.Equal(t, models.StatusPublished, s.Status)
	}
}

func TestMine_EmptyListIsArray(t *testing.T) {
	h := newRouter(store.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/my-sessions", nil)
	req.Header.Set("X-User", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessions":[]`)
}

func TestUpdate(t *testing.T) {
	h := newRouter(store.NewMemoryStore())
	_, created := do(t, h, http.MethodPost, "/my-sessions/save-draft", "u1", `{"title":"T","mentor":"Ann"}`)
	id := created.Session.ID

	code, res := do(t, h, http.MethodPut, "/my-sessions/"+id, "u1", `{"title":"T2","status":"published"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Session updated successfully", res.Message)
	assert.Equal(t, "T2", res.Session.Title)
	assert.Equal(t, "Ann", res.Session.Mentor)
	assert.Equal(t, models.StatusPublished, res.Session.Status)

	code, _ = do(t, h, http.MethodPut, "/my-sessions/"+id, "u1", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNonOwnerIndistinguishableFromMissing(t *testing.T) {
	h := newRouter(store.NewMemoryStore())
	_, created := do(t, h, http.MethodPost, "/my-sessions/publish", "owner", `{"title":"T"}`)
	id := created.Session.ID
	missing := "0123456789abcdef01234567"

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		codeOther, resOther := do(t, h, method, "/my-sessions/"+id, "intruder", `{"title":"x"}`)
		codeMissing, resMissing := do(t, h, method, "/my-sessions/"+missing, "owner", `{"title":"x"}`)
		codeBadID, resBadID := do(t, h, method, "/my-sessions/not-an-id", "owner", `{"title":"x"}`)

		assert.Equal(t, http.StatusNotFound, codeOther, method)
		assert.Equal(t, codeMissing, codeOther, method)
		assert.Equal(t, codeBadID, codeOther, method)
		assert.Equal(t, resMissing, resOther, method)
		assert.Equal(t, resBadID, resOther, method)
	}

	_, res := do(t, h, http.MethodGet, "/sessions", "", "")
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, "T", res.Sessions[0].Title)
}

func TestDelete(t *testing.T) {
	h := newRouter(store.NewMemoryStore())
	_, created := do(t, h, http.MethodPost, "/my-sessions/publish", "u1", `{"title":"T"}`)

	code, res := do(t, h, http.MethodDelete, "/my-sessions/"+created.Session.ID, "u1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Session deleted successfully", res.Message)

	code, _ = do(t, h, http.MethodDelete, "/my-sessions/"+created.Session.ID, "u1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

type failingStore struct{}

var errBoom = errors.New("boom")

func (failingStore) Create(context.Context, *models.Session) error { return errBoom }
func (failingStore) ListByOwner(context.Context, string) ([]models.Session, error) {
	return nil, errBoom
}
func (failingStore) ListPublished(context.Context) ([]models.Session, error) { return nil, errBoom }
func (failingStore) Update(context.Context, string, string, models.SessionUpdate) (*models.Session, error) {
	return nil, errBoom
}
func (failingStore) Delete(context.Context, string, string) error { return errBoom }

func TestStoreFailuresAre500(t *testing.T) {
	h := newRouter(failingStore{})

	tests := []struct {
		method, path, body, msg string
	}{
		{http.MethodPost, "/my-sessions/publish", `{}`, "Error publishing session"},
		{http.MethodPost, "/my-sessions/save-draft", `{}`, "Error saving draft"},
		{http.MethodGet, "/my-sessions", "", "Failed to fetch sessions"},
		{http.MethodGet, "/sessions", "", "Server error"},
		{http.MethodPut, "/my-sessions/abc", `{}`, "Error updating session"},
		{http.MethodDelete, "/my-sessions/abc", "", "Error deleting session"},
	}
	for _, tt := range tests {
		code, res := do(t, h, tt.method, tt.path, "u1", tt.body)
		assert.Equal(t, http.StatusInternalServerError, code, tt.path)
		assert.Equal(t, tt.msg, res.Message, tt.path)
	}
}
