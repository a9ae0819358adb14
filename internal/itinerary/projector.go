// Package itinerary derives the client-facing view of a trip: the ordered,
// day/time-annotated itinerary and the trip-level budget summary, merged
// with the persisted trip row into the assembled representation.
//
// Everything here is recomputed from persisted activities on every read.
// There is no cache and no stored itinerary — a legacy deployment may still
// carry a serialized itinerary blob on the trip row, but it is never read;
// the live projection is the only source of truth.
package itinerary

import (
	"log/slog"
	"sort"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/ledger"
	"github.com/tmarques/tripflow/backend/internal/schedule"
)

// Projection is the derived read model for one trip.
type Projection struct {
	Items   []domain.ItineraryItem
	Summary domain.BudgetSummary
}

// Project builds the itinerary view from a trip and its activities.
//
// Items are ordered by StartTime ascending regardless of input order. An
// activity with a corrupt (zero) timestamp projects as day 1 with an empty
// time rather than failing the projection; its cost still counts toward the
// summary, because a broken display value does not make the spend itself
// invalid.
//
// Project is a pure function of its inputs: projecting the same trip and
// activities twice yields identical output.
func Project(trip domain.Trip, activities []domain.Activity) Projection {
	ordered := make([]domain.Activity, len(activities))
	copy(ordered, activities)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	items := make([]domain.ItineraryItem, 0, len(ordered))
	costs := make([]float64, 0, len(ordered))
	for _, act := range ordered {
		costs = append(costs, act.Cost)

		day, clock := schedule.FromTimestamp(trip.StartDate, act.StartTime)
		if act.StartTime.IsZero() {
			slog.Warn("activity has no usable start time, projecting as day 1",
				"trip_id", trip.ID, "activity_id", act.ID)
		}

		items = append(items, domain.ItineraryItem{
			ID:        act.ID,
			Day:       day,
			Time:      clock,
			Activity:  act.Title,
			Location:  act.Location,
			Budget:    act.Cost,
			CreatedAt: act.CreatedAt,
		})
	}

	return Projection{
		Items:   items,
		Summary: ledger.ComputeTotals(trip.Budget, costs),
	}
}
