package handler_test

import (
	"context"
	"time"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/handler"
)

// mockTripServicer is a function-field test double for handler.TripServicer.
type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error)
	getByID func(ctx context.Context, id, ownerID string) (domain.AssembledTrip, error)
	list    func(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.AssembledTrip, int64, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error)
	delete  func(ctx context.Context, id, ownerID string) error
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id, ownerID string) (domain.AssembledTrip, error) {
	return m.getByID(ctx, id, ownerID)
}
func (m *mockTripServicer) List(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.AssembledTrip, int64, error) {
	return m.list(ctx, ownerID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.AssembledTrip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Delete(ctx context.Context, id, ownerID string) error {
	return m.delete(ctx, id, ownerID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockActivityServicer is a function-field test double for
// handler.ActivityServicer.
type mockActivityServicer struct {
	add func(ctx context.Context, tripID, ownerID string, in domain.NewActivity) (domain.AssembledTrip, error)
}

func (m *mockActivityServicer) Add(ctx context.Context, tripID, ownerID string, in domain.NewActivity) (domain.AssembledTrip, error) {
	return m.add(ctx, tripID, ownerID, in)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

func assembledTrip() domain.AssembledTrip {
	return domain.AssembledTrip{
		ID:              "trip-1",
		Title:           "Palawan Island Hop",
		Destination:     "El Nido",
		StartDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Budget:          "₱50,000",
		Status:          domain.TripStatusUpcoming,
		Image:           "/assets/images/default-trip.jpg",
		Itinerary:       []domain.ItineraryItem{},
		RemainingBudget: 50000,
		TotalSpent:      0,
	}
}
