package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/kidtask/internal/reward"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to an HTTP status. The error's own message
// already carries the entity id and current status.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, reward.ErrValidation),
		errors.Is(err, reward.ErrInvalidAmount),
		errors.Is(err, reward.ErrInvalidRating):
		status = http.StatusBadRequest
	case errors.Is(err, reward.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, reward.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, reward.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, reward.ErrInsufficientBalance),
		errors.Is(err, reward.ErrNotEligible):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
