package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (or is not owned by the caller).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, day out of range, malformed
// time string). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBudgetExceeded is returned by the activity repo when the store-level
// spend guard rejects an insert. The service layer recomputes the exact
// figures and converts it into a *BudgetExceededError for the caller.
var ErrBudgetExceeded = errors.New("budget exceeded")

// BudgetExceededError is returned when a proposed activity cost does not fit
// in the trip's remaining budget. It carries the exact figures so the caller
// can render an actionable message.
//
// It unwraps to both ErrValidation and ErrBudgetExceeded, so handlers that
// only know the sentinels still map it to 422.
type BudgetExceededError struct {
	ProposedCost    float64
	RemainingBudget float64
	TotalBudget     float64
	TotalSpent      float64
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("activity cost %.2f exceeds remaining budget %.2f", e.ProposedCost, e.RemainingBudget)
}

func (e *BudgetExceededError) Unwrap() []error { return []error{ErrValidation, ErrBudgetExceeded} }
