package itinerary

import (
	"errors"
	"log/slog"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/ledger"
)

// errUnassemblable marks a trip row too damaged to assemble.
var errUnassemblable = errors.New("trip row is not assemblable")

// Assembler merges a persisted trip row with its live projection into the
// canonical externally-visible representation.
//
// The currency formatter and default image are injected at construction and
// immutable afterwards; assembly never depends on process state.
type Assembler struct {
	money        ledger.Formatter
	defaultImage string
}

// NewAssembler constructs an Assembler. currencySymbol prefixes the budget
// display string; defaultImage is substituted when a trip has no image.
func NewAssembler(currencySymbol, defaultImage string) Assembler {
	return Assembler{
		money:        ledger.NewFormatter(currencySymbol),
		defaultImage: defaultImage,
	}
}

// Assemble builds the external trip representation:
//
//   - the itinerary is always the live projection, never a stored blob
//   - the budget is rendered as a display string exactly here, while the
//     numeric remaining/spent figures pass through untouched
//   - a legacy "planning" status reads back as "upcoming"
//   - a missing image falls back to the configured default
//
// An error is returned only for rows too malformed to represent (no id);
// list callers substitute a placeholder via AssembleAll.
func (a Assembler) Assemble(trip domain.Trip, activities []domain.Activity) (domain.AssembledTrip, error) {
	if trip.ID == "" {
		return domain.AssembledTrip{}, errUnassemblable
	}

	proj := Project(trip, activities)

	image := trip.Image
	if image == "" {
		image = a.defaultImage
	}

	return domain.AssembledTrip{
		ID:              trip.ID,
		Title:           trip.Title,
		Destination:     trip.Destination,
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		Budget:          a.money.Format(trip.Budget),
		Companions:      trip.Companions,
		Status:          domain.NormalizeStatus(trip.Status),
		Image:           image,
		Itinerary:       proj.Items,
		RemainingBudget: proj.Summary.RemainingBudget,
		TotalSpent:      proj.Summary.TotalSpent,
		CreatedAt:       trip.CreatedAt,
		UpdatedAt:       trip.UpdatedAt,
	}, nil
}

// AssembleAll assembles a list of trips, looking up each trip's activities
// in activitiesByTrip. A single malformed row yields a minimal-but-valid
// placeholder (empty itinerary, zero budget) instead of failing the whole
// list; the fault is logged, not surfaced, because it reflects stored data
// quality rather than the current request.
func (a Assembler) AssembleAll(trips []domain.Trip, activitiesByTrip map[string][]domain.Activity) []domain.AssembledTrip {
	out := make([]domain.AssembledTrip, 0, len(trips))
	for _, trip := range trips {
		assembled, err := a.Assemble(trip, activitiesByTrip[trip.ID])
		if err != nil {
			slog.Warn("substituting placeholder for unassemblable trip",
				"trip_id", trip.ID, "error", err)
			assembled = a.placeholder(trip)
		}
		out = append(out, assembled)
	}
	return out
}

// placeholder returns the minimal valid representation for a trip row that
// could not be assembled.
func (a Assembler) placeholder(trip domain.Trip) domain.AssembledTrip {
	return domain.AssembledTrip{
		ID:        trip.ID,
		Title:     trip.Title,
		Budget:    a.money.Format(0),
		Status:    domain.TripStatusUpcoming,
		Image:     a.defaultImage,
		Itinerary: []domain.ItineraryItem{},
		CreatedAt: trip.CreatedAt,
		UpdatedAt: trip.UpdatedAt,
	}
}
