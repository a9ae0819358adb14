package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// errorResponse is the JSON error envelope. The budget figures are present
// only on budget-exceeded rejections, so the client can render the exact
// remaining/total/spent amounts.
type errorResponse struct {
	Error           string   `json:"error"`
	RemainingBudget *float64 `json:"remainingBudget,omitempty"`
	TotalBudget     *float64 `json:"totalBudget,omitempty"`
	TotalSpent      *float64 `json:"totalSpent,omitempty"`
}

// respondError maps a service error onto the HTTP surface:
// budget overruns and validation failures → 422 with a field-specific
// message, missing resources → 404, anything else → 500 (logged, with the
// internal detail kept out of the response body).
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	var budgetErr *domain.BudgetExceededError
	if errors.As(err, &budgetErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:           budgetErr.Error(),
			RemainingBudget: &budgetErr.RemainingBudget,
			TotalBudget:     &budgetErr.TotalBudget,
			TotalSpent:      &budgetErr.TotalSpent,
		})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundMessage})
		return
	}
	if errors.Is(err, domain.ErrValidation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: unwrapMessage(err)})
		return
	}

	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// respondBadRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error. e.g. "service.TripService.Create: validation error: title is
// required" → "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
