// Package ledger normalizes monetary values and enforces the spend-vs-budget
// rule at the moment new spend is introduced.
//
// The package is deliberately asymmetric about bad input. Amounts arriving
// from stored rows or legacy clients parse fail-open (anything non-numeric
// becomes zero), because historical corruption must not cascade into failed
// reads. Whether a *new* write is allowed is decided fail-closed by
// ValidateSpend and by the store's own insert guard.
package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// ParseAmount normalizes a monetary string into a number.
//
// It accepts plain numbers ("1200", "99.50") and currency-formatted strings
// with symbols and thousands separators ("₱50,000", "$1,234.56"). Empty and
// non-numeric input yields 0. This is a total function: it never returns an
// error, trading strict validation for resilience against malformed legacy
// data.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Keep digits, the decimal point, and a leading sign; drop currency
	// symbols, thousands separators, and whitespace.
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ComputeTotals derives the per-trip budget summary from the trip's budget
// and the costs of all its activities.
//
// RemainingBudget may be negative: the soft invariant (spend <= budget) is
// checked only when spend is added, not when the budget is later lowered, so
// prior writes can legitimately exceed a reduced budget. The overspend is
// reported, not clamped.
func ComputeTotals(tripBudget float64, costs []float64) domain.BudgetSummary {
	var spent float64
	for _, c := range costs {
		spent += c
	}
	return domain.BudgetSummary{
		TotalSpent:      spent,
		RemainingBudget: tripBudget - spent,
	}
}

// Reconcilable reports whether a budget summary is usable for validation.
// Non-finite totals mean some stored cost was corrupt beyond parsing; the
// caller is expected to log and skip validation (fail-open) rather than
// block the write on pre-existing data damage.
func Reconcilable(s domain.BudgetSummary) bool {
	return !math.IsNaN(s.TotalSpent) && !math.IsInf(s.TotalSpent, 0) &&
		!math.IsNaN(s.RemainingBudget) && !math.IsInf(s.RemainingBudget, 0)
}

// ValidateSpend checks a proposed new cost against the remaining budget.
// Spending exactly the remaining amount is allowed. On overspend it returns
// a *domain.BudgetExceededError carrying the exact remaining/total/spent
// figures so the caller can render a precise message.
func ValidateSpend(tripBudget float64, s domain.BudgetSummary, proposedCost float64) error {
	if proposedCost <= s.RemainingBudget {
		return nil
	}
	return &domain.BudgetExceededError{
		ProposedCost:    proposedCost,
		RemainingBudget: s.RemainingBudget,
		TotalBudget:     tripBudget,
		TotalSpent:      s.TotalSpent,
	}
}
