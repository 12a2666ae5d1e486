package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mealtrack/internal/core"
	"mealtrack/internal/snapshot"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response body", "error", err)
	}
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeMealError maps domain errors from the factory and serializer onto
// HTTP statuses: validation problems are the client's, everything else is
// ours.
func writeMealError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrNoCalories),
		errors.Is(err, core.ErrUnknownSlot),
		errors.Is(err, core.ErrEmptyID),
		errors.Is(err, snapshot.ErrInvalidDocument):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
