package domain

import "time"

// Limits applied to new activities at write time. Stored rows that violate
// them are still read back — validation is fail-closed for writes only.
const (
	// MaxTripDays bounds the day offset an activity may be scheduled on.
	MaxTripDays = 60

	// MaxTextLen bounds free-text fields (title, location).
	MaxTextLen = 200

	// MaxActivityCost bounds a single activity's cost.
	MaxActivityCost = 100_000_000
)

// Activity represents a single scheduled item within a trip.
//
// StartTime is the absolute timestamp and the single source of truth for
// "when" — the client-facing day number and time-of-day are recomputed from
// it on every read, never stored. A zero StartTime marks a corrupt or unset
// value from legacy data.
//
// TripID is a plain string reference; there is no foreign-key constraint in
// the schema because the trip identifier format varies across deployments.
// Join integrity is enforced by the repo's own queries.
type Activity struct {
	ID        string
	TripID    string
	Title     string
	Location  string
	StartTime time.Time
	Cost      float64
	CreatedAt time.Time
}

// NewActivity is the caller's view of an activity to be scheduled: a
// trip-relative (day, time) pair plus free-text fields and an optional
// cost. The absolute timestamp is derived from it at write time and is the
// only "when" that gets persisted.
type NewActivity struct {
	Day      int
	Time     string
	Title    string
	Location string
	Cost     float64
}
