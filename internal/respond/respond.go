// Package respond writes the JSON bodies shared by all handlers.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// ServerError logs err with the request id and answers 500 with msg.
func ServerError(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	log.ErrorContext(r.Context(), msg,
		"err", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
	)
	Message(w, http.StatusInternalServerError, msg)
}
