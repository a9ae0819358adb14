package service_test

import (
	"context"
	"time"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/itinerary"
	"github.com/tmarques/tripflow/backend/internal/repo"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id, ownerID string) (domain.Trip, error)
	listByOwner func(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete      func(ctx context.Context, id, ownerID string) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id, ownerID string) (domain.Trip, error) {
	return m.getByID(ctx, id, ownerID)
}
func (m *mockTripRepo) ListByOwner(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByOwner(ctx, ownerID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id, ownerID string) error {
	return m.delete(ctx, id, ownerID)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockActivityRepo is a hand-written test double for repo.ActivityRepo.
type mockActivityRepo struct {
	createWithinBudget func(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	listByTripID       func(ctx context.Context, tripID string) ([]domain.Activity, error)
	listByTripIDs      func(ctx context.Context, tripIDs []string) (map[string][]domain.Activity, error)
}

func (m *mockActivityRepo) CreateWithinBudget(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	return m.createWithinBudget(ctx, activity)
}
func (m *mockActivityRepo) ListByTripID(ctx context.Context, tripID string) ([]domain.Activity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockActivityRepo) ListByTripIDs(ctx context.Context, tripIDs []string) (map[string][]domain.Activity, error) {
	return m.listByTripIDs(ctx, tripIDs)
}

// compile-time check: mockActivityRepo must satisfy repo.ActivityRepo.
var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

func testAssembler() itinerary.Assembler {
	return itinerary.NewAssembler("₱", "/assets/images/default-trip.jpg")
}

func validTrip() domain.Trip {
	return domain.Trip{
		ID:          "trip-1",
		OwnerID:     "user-1",
		Title:       "Palawan Island Hop",
		Destination: "El Nido",
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Budget:      1000,
		Status:      domain.TripStatusUpcoming,
	}
}

// echoTripRepo echoes whatever it receives back — useful for Create/Update
// tests that only care about validation logic, not what the DB returns.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			if t.ID == "" {
				t.ID = "trip-1"
			}
			return t, nil
		},
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// emptyActivityRepo returns no activities for any trip.
func emptyActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		listByTripID: func(_ context.Context, _ string) ([]domain.Activity, error) { return nil, nil },
		listByTripIDs: func(_ context.Context, _ []string) (map[string][]domain.Activity, error) {
			return map[string][]domain.Activity{}, nil
		},
	}
}

// activitiesWithSpend returns a repo holding existing activities whose costs
// sum to the given amounts.
func activitiesWithSpend(tripID string, costs ...float64) *mockActivityRepo {
	var acts []domain.Activity
	for i, c := range costs {
		acts = append(acts, domain.Activity{
			ID:        tripID + "-act-" + string(rune('a'+i)),
			TripID:    tripID,
			Title:     "Existing",
			StartTime: time.Date(2025, 3, 1, 8+i, 0, 0, 0, time.UTC),
			Cost:      c,
		})
	}
	return &mockActivityRepo{
		listByTripID: func(_ context.Context, _ string) ([]domain.Activity, error) { return acts, nil },
		createWithinBudget: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			a.ID = "new-act"
			return a, nil
		},
	}
}
