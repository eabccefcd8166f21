package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"snapquest/internal/models"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, models.ErrInsufficientTokens):
		http.Error(w, "not enough tokens", http.StatusPaymentRequired)
	case errors.Is(err, models.ErrIncompleteVision):
		http.Error(w, "all four vision parameters are required", http.StatusBadRequest)
	case errors.Is(err, models.ErrMissionNotFound):
		http.Error(w, "mission not found", http.StatusNotFound)
	default:
		http.Error(w, "server error", http.StatusInternalServerError)
	}
}
