package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/service"
)

func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _, _ string) (domain.Trip, error) { return trip, nil },
	}
}

func validNewActivity() domain.NewActivity {
	return domain.NewActivity{
		Day:      2,
		Time:     "14:30",
		Title:    "Kayak rental",
		Location: "Big Lagoon",
		Cost:     300,
	}
}

func TestActivityService_Add(t *testing.T) {
	trips := tripRepoReturning(validTrip())
	acts := activitiesWithSpend("trip-1", 500)
	var created domain.Activity
	inner := acts.createWithinBudget
	acts.createWithinBudget = func(ctx context.Context, a domain.Activity) (domain.Activity, error) {
		created = a
		return inner(ctx, a)
	}
	svc := service.NewActivityService(trips, acts, testAssembler())

	got, err := svc.Add(context.Background(), "trip-1", "user-1", validNewActivity())
	require.NoError(t, err)

	// Day 2 of a trip starting 2025-03-01, at 14:30.
	assert.Equal(t, time.Date(2025, 3, 2, 14, 30, 0, 0, time.UTC), created.StartTime)
	assert.Equal(t, "trip-1", created.TripID)
	assert.Equal(t, 300.0, created.Cost)
	assert.Equal(t, "trip-1", got.ID)
}

func TestActivityService_Add_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _, _ string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewActivityService(trips, emptyActivityRepo(), testAssembler())

	_, err := svc.Add(context.Background(), "nope", "user-1", validNewActivity())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityService_Add_Overspend(t *testing.T) {
	trips := tripRepoReturning(validTrip()) // budget 1000
	acts := activitiesWithSpend("trip-1", 800)
	svc := service.NewActivityService(trips, acts, testAssembler())

	in := validNewActivity()
	in.Cost = 300 // remaining is only 200

	_, err := svc.Add(context.Background(), "trip-1", "user-1", in)
	require.ErrorIs(t, err, domain.ErrBudgetExceeded)
	require.ErrorIs(t, err, domain.ErrValidation)

	var bee *domain.BudgetExceededError
	require.ErrorAs(t, err, &bee)
	assert.Equal(t, 300.0, bee.ProposedCost)
	assert.Equal(t, 200.0, bee.RemainingBudget)
	assert.Equal(t, 1000.0, bee.TotalBudget)
	assert.Equal(t, 800.0, bee.TotalSpent)
}

func TestActivityService_Add_ExactRemainingAccepted(t *testing.T) {
	trips := tripRepoReturning(validTrip())
	acts := activitiesWithSpend("trip-1", 800)
	svc := service.NewActivityService(trips, acts, testAssembler())

	in := validNewActivity()
	in.Cost = 200 // spends the budget to exactly zero

	_, err := svc.Add(context.Background(), "trip-1", "user-1", in)
	assert.NoError(t, err)
}

func TestActivityService_Add_BadDayOrTime(t *testing.T) {
	trips := tripRepoReturning(validTrip())
	svc := service.NewActivityService(trips, activitiesWithSpend("trip-1"), testAssembler())

	tests := []struct {
		name   string
		mutate func(*domain.NewActivity)
	}{
		{"day zero", func(in *domain.NewActivity) { in.Day = 0 }},
		{"day beyond range", func(in *domain.NewActivity) { in.Day = 61 }},
		{"empty time", func(in *domain.NewActivity) { in.Time = "" }},
		{"bad time format", func(in *domain.NewActivity) { in.Time = "noon" }},
		{"hour out of range", func(in *domain.NewActivity) { in.Time = "24:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNewActivity()
			tt.mutate(&in)
			_, err := svc.Add(context.Background(), "trip-1", "user-1", in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivityService_Add_InputValidation(t *testing.T) {
	trips := tripRepoReturning(validTrip())
	svc := service.NewActivityService(trips, activitiesWithSpend("trip-1"), testAssembler())

	tests := []struct {
		name   string
		mutate func(*domain.NewActivity)
	}{
		{"empty title", func(in *domain.NewActivity) { in.Title = "  " }},
		{"negative cost", func(in *domain.NewActivity) { in.Cost = -5 }},
		{"absurd cost", func(in *domain.NewActivity) { in.Cost = 100_000_001 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNewActivity()
			tt.mutate(&in)
			_, err := svc.Add(context.Background(), "trip-1", "user-1", in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivityService_Add_SkipsBudgetCheckWhenTotalsNotFinite(t *testing.T) {
	// A stored cost of NaN poisons the sum. The write must still go through:
	// damaged historical data never blocks new writes, only the guarded
	// insert's own arithmetic does.
	trips := tripRepoReturning(validTrip())
	acts := activitiesWithSpend("trip-1")
	acts.listByTripID = func(_ context.Context, _ string) ([]domain.Activity, error) {
		return []domain.Activity{{ID: "bad", TripID: "trip-1", Title: "Corrupt", Cost: math.NaN()}}, nil
	}
	svc := service.NewActivityService(trips, acts, testAssembler())

	in := validNewActivity()
	in.Cost = 5000 // would fail a naive check against budget 1000

	_, err := svc.Add(context.Background(), "trip-1", "user-1", in)
	assert.NoError(t, err)
}

func TestActivityService_Add_GuardRejectsConcurrentOverspend(t *testing.T) {
	// The pre-check passes, but the store guard reports the budget gone:
	// another request committed in between. The caller still gets the
	// figures from the snapshot this request saw.
	trips := tripRepoReturning(validTrip())
	acts := activitiesWithSpend("trip-1", 500)
	acts.createWithinBudget = func(_ context.Context, _ domain.Activity) (domain.Activity, error) {
		return domain.Activity{}, domain.ErrBudgetExceeded
	}
	svc := service.NewActivityService(trips, acts, testAssembler())

	_, err := svc.Add(context.Background(), "trip-1", "user-1", validNewActivity())
	require.ErrorIs(t, err, domain.ErrBudgetExceeded)

	var bee *domain.BudgetExceededError
	require.ErrorAs(t, err, &bee)
	assert.Equal(t, 300.0, bee.ProposedCost)
	assert.Equal(t, 500.0, bee.RemainingBudget)
	assert.Equal(t, 1000.0, bee.TotalBudget)
}

func TestActivityService_Add_RepoErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	trips := tripRepoReturning(validTrip())
	acts := activitiesWithSpend("trip-1")
	acts.createWithinBudget = func(_ context.Context, _ domain.Activity) (domain.Activity, error) {
		return domain.Activity{}, boom
	}
	svc := service.NewActivityService(trips, acts, testAssembler())

	_, err := svc.Add(context.Background(), "trip-1", "user-1", validNewActivity())
	assert.ErrorIs(t, err, boom)
}
