package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/itinerary"
	"github.com/tmarques/tripflow/backend/internal/ledger"
	"github.com/tmarques/tripflow/backend/internal/repo"
	"github.com/tmarques/tripflow/backend/internal/schedule"
)

// ActivityService implements the add-activity flow: budget check, day/time
// resolution, guarded insert, re-projection.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	assembler  itinerary.Assembler
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo, assembler itinerary.Assembler) *ActivityService {
	return &ActivityService{trips: trips, activities: activities, assembler: assembler}
}

// Add schedules a new activity on a trip and returns the freshly assembled
// trip including it.
//
// The flow is fail-closed on everything about the new record (day range,
// time format, cost bounds, remaining budget) and fail-open on damage in
// pre-existing data: if the stored costs do not sum to a finite number, the
// budget check is logged and skipped rather than blocking the write.
//
// The pre-check exists to produce an error carrying the exact figures; the
// store's own guarded insert is what actually makes overspending impossible
// under concurrency.
func (s *ActivityService) Add(ctx context.Context, tripID, ownerID string, in domain.NewActivity) (domain.AssembledTrip, error) {
	trip, err := s.trips.GetByID(ctx, tripID, ownerID)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}

	if err := validateActivityInput(in); err != nil {
		return domain.AssembledTrip{}, err
	}

	existing, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}

	totals := ledger.ComputeTotals(trip.Budget, costsOf(existing))
	if !ledger.Reconcilable(totals) {
		slog.Warn("budget totals not computable, skipping spend validation",
			"trip_id", trip.ID, "total_spent", totals.TotalSpent)
	} else if err := ledger.ValidateSpend(trip.Budget, totals, in.Cost); err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}

	startTime, err := schedule.ToTimestamp(trip.StartDate, in.Day, in.Time)
	if err != nil {
		return domain.AssembledTrip{}, err
	}

	_, err = s.activities.CreateWithinBudget(ctx, domain.Activity{
		TripID:    trip.ID,
		Title:     in.Title,
		Location:  in.Location,
		StartTime: startTime,
		Cost:      in.Cost,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBudgetExceeded) {
			// The guard lost a race the pre-check won: another add committed
			// in between. Report the figures the caller just missed.
			return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w",
				&domain.BudgetExceededError{
					ProposedCost:    in.Cost,
					RemainingBudget: totals.RemainingBudget,
					TotalBudget:     trip.Budget,
					TotalSpent:      totals.TotalSpent,
				})
		}
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}

	// Re-read and re-project so the response reflects exactly what a
	// subsequent GET would return, new activity included.
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}
	assembled, err := s.assembler.Assemble(trip, activities)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.ActivityService.Add: assemble: %w", err)
	}
	return assembled, nil
}

// validateActivityInput enforces write-time rules for a new activity.
// Day and time format are checked again (fail-closed) by the resolver; the
// checks here cover the free-text and cost fields.
func validateActivityInput(in domain.NewActivity) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(in.Title) > domain.MaxTextLen {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, domain.MaxTextLen)
	}
	if len(in.Location) > domain.MaxTextLen {
		return fmt.Errorf("%w: location must be at most %d characters", domain.ErrValidation, domain.MaxTextLen)
	}
	if in.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if in.Cost > domain.MaxActivityCost {
		return fmt.Errorf("%w: cost must be at most %d", domain.ErrValidation, domain.MaxActivityCost)
	}
	return nil
}

// costsOf extracts the cost list for the ledger.
func costsOf(activities []domain.Activity) []float64 {
	costs := make([]float64, len(activities))
	for i, a := range activities {
		costs[i] = a.Cost
	}
	return costs
}
