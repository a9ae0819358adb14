package domain

import "time"

// ItineraryItem is the client-facing, trip-relative projection of one
// Activity. Day and Time are derived from Activity.StartTime relative to the
// trip's start date on every read; they are never persisted.
//
// Budget carries the activity's cost — the field is named for the API shape,
// not for the trip-level budget.
type ItineraryItem struct {
	ID        string    `json:"id"`
	Day       int       `json:"day"`
	Time      string    `json:"time"` // "HH:MM", empty when the timestamp is corrupt
	Activity  string    `json:"activity"`
	Location  string    `json:"location"`
	Budget    float64   `json:"budget"`
	CreatedAt time.Time `json:"createdAt"`
}

// BudgetSummary is the derived per-trip spend summary.
// RemainingBudget may be negative when committed spend exceeds the budget
// (e.g. after the budget was lowered); it is reported, not clamped.
type BudgetSummary struct {
	TotalSpent      float64 `json:"totalSpent"`
	RemainingBudget float64 `json:"remainingBudget"`
}

// AssembledTrip is the canonical externally-visible trip representation:
// the persisted row merged with the live itinerary projection and budget
// summary, with normalization and fallback rules applied.
//
// Budget is the currency-formatted display string; RemainingBudget and
// TotalSpent stay numeric because clients do arithmetic on them.
type AssembledTrip struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Destination     string          `json:"destination"`
	StartDate       time.Time       `json:"-"`
	EndDate         time.Time       `json:"-"`
	Budget          string          `json:"budget"`
	Companions      string          `json:"companions"`
	Status          TripStatus      `json:"status"`
	Image           string          `json:"image"`
	Itinerary       []ItineraryItem `json:"itinerary"`
	RemainingBudget float64         `json:"remainingBudget"`
	TotalSpent      float64         `json:"totalSpent"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
