package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vitien/internal/apperr"
	applog "vitien/internal/log"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

// respondError maps any error to the wire: classified errors keep their
// status and message, everything else collapses to a logged 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	if status >= 500 {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, apperr.MessageOf(err))
}
