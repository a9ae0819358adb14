// Package service contains the business logic for the Tripflow API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/itinerary"
	"github.com/tmarques/tripflow/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// Read operations return the assembled representation: the persisted row
// merged with the live itinerary projection — never a stored itinerary.
type TripService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
	assembler  itinerary.Assembler
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, activities repo.ActivityRepo, assembler itinerary.Assembler) *TripService {
	return &TripService{trips: trips, activities: activities, assembler: assembler}
}

// Create validates and persists a new trip, returning it assembled.
// The budget arrives already normalized to a number (the handler runs
// currency strings through the ledger); a new trip has no activities, so
// its itinerary is empty and remaining budget equals the budget.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.AssembledTrip{}, err
	}
	if trip.Status == "" {
		trip.Status = domain.TripStatusUpcoming
	}
	trip = defaultEndDate(trip)

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return s.assemble(ctx, created)
}

// GetByID returns a single assembled trip, scoped to its owner.
func (s *TripService) GetByID(ctx context.Context, id, ownerID string) (domain.AssembledTrip, error) {
	trip, err := s.trips.GetByID(ctx, id, ownerID)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return s.assemble(ctx, trip)
}

// List returns one page of the owner's assembled trips and the total count.
// A single unassemblable trip row yields a placeholder entry rather than
// failing the whole page. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.AssembledTrip, int64, error) {
	trips, total, err := s.trips.ListByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}

	ids := make([]string, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	byTrip, err := s.activities.ListByTripIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}

	return s.assembler.AssembleAll(trips, byTrip), total, nil
}

// Update validates and persists changes to an existing trip, returning it
// assembled. Lowering the budget below committed spend is allowed — the
// next read simply reports a negative remaining budget. No retroactive
// validation occurs.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.AssembledTrip{}, err
	}

	updated, err := s.trips.Update(ctx, defaultEndDate(trip))
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return s.assemble(ctx, updated)
}

// Delete removes a trip and cascades to its activities.
func (s *TripService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.trips.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// assemble fetches the trip's activities and builds its external view.
func (s *TripService) assemble(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error) {
	activities, err := s.activities.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.TripService: list activities: %w", err)
	}
	assembled, err := s.assembler.Assemble(trip, activities)
	if err != nil {
		return domain.AssembledTrip{}, fmt.Errorf("service.TripService: assemble: %w", err)
	}
	return assembled, nil
}

// defaultEndDate fills an omitted end date with the start date, making a
// single-day trip. The stored row then always satisfies start <= end instead
// of carrying a zero date.
func defaultEndDate(trip domain.Trip) domain.Trip {
	if trip.EndDate.IsZero() {
		trip.EndDate = trip.StartDate
	}
	return trip
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only is rejected) and length-bounded.
//   - EndDate must not be before StartDate; same-day trips are valid.
//   - Budget must be non-negative (it arrives normalized — a malformed
//     currency string has already become zero, deliberately).
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if len(trip.Title) > domain.MaxTextLen {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrValidation, domain.MaxTextLen)
	}
	if len(trip.Destination) > domain.MaxTextLen {
		return fmt.Errorf("%w: destination must be at most %d characters", domain.ErrValidation, domain.MaxTextLen)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if !trip.EndDate.IsZero() && trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	if trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return nil
}
