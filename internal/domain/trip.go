// Package domain contains the core data types for the Tripflow API.
// This package has zero external dependencies and is imported by every other
// internal package (ledger, schedule, itinerary, repo, service, handler).
package domain

import "time"

// TripStatus is the closed set of states a trip can be in.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"

	// legacyStatusPlanning predates the upcoming/ongoing/completed set and
	// still appears in old rows. It is normalized on read, never written.
	legacyStatusPlanning TripStatus = "planning"
)

// NormalizeStatus maps legacy status values onto the current set.
// Unknown values fall back to upcoming rather than leaking out of the API.
func NormalizeStatus(s TripStatus) TripStatus {
	switch s {
	case TripStatusUpcoming, TripStatusOngoing, TripStatusCompleted:
		return s
	default:
		return TripStatusUpcoming
	}
}

// Trip represents a single planned journey.
// A trip is the top-level aggregate; activities belong to a trip.
//
// StartDate and EndDate are calendar dates stored at UTC midnight.
// Budget is the normalized numeric amount — display formatting happens
// exactly once, in the assembler, never here.
type Trip struct {
	ID          string
	OwnerID     string // opaque user identifier supplied by the auth layer
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Budget      float64
	Companions  string
	Status      TripStatus
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
