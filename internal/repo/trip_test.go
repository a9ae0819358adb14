package repo_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarques/tripflow/backend/internal/domain"
	"github.com/tmarques/tripflow/backend/internal/repo"
	"github.com/tmarques/tripflow/backend/testutil"
)

// testTx opens a transaction against the migrated test database. It is rolled
// back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; skips otherwise.
func testTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.MigratedPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

func newTestTripRepo(t *testing.T, format domain.IDFormat) repo.TripRepo {
	t.Helper()
	return repo.NewTripRepo(testTx(t), format)
}

// tripFixture returns a domain.Trip with sensible defaults. Callers override
// individual fields as needed.
func tripFixture() domain.Trip {
	return domain.Trip{
		OwnerID:     "user-1",
		Title:       "Palawan Island Hop",
		Destination: "El Nido",
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Budget:      50000,
		Companions:  "Ana, Luis",
		Status:      domain.TripStatusUpcoming,
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(got.ID)
	assert.NoError(t, parseErr, "ID should be a generated UUID")
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Destination, got.Destination)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, input.Budget, got.Budget)
	assert.Equal(t, domain.TripStatusUpcoming, got.Status)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NumericIDs(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatNumeric)
	ctx := context.Background()

	first, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	second, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	a, err := strconv.ParseInt(first.ID, 10, 64)
	require.NoError(t, err, "numeric format must yield decimal ids")
	b, err := strconv.ParseInt(second.ID, 10, 64)
	require.NoError(t, err)
	assert.Greater(t, b, a, "sequence ids must be monotonic")
}

func TestTripRepo_GetByID(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
}

func TestTripRepo_GetByID_WrongOwner(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)

	_, err := r.GetByID(context.Background(), uuid.NewString(), "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByOwner(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	// Three trips for user-1 with distinct start dates, one for another user.
	for i := 0; i < 3; i++ {
		in := tripFixture()
		in.Title = "Trip " + strconv.Itoa(i)
		in.StartDate = time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC)
		_, err := r.Create(ctx, in)
		require.NoError(t, err)
	}
	other := tripFixture()
	other.OwnerID = "user-2"
	_, err := r.Create(ctx, other)
	require.NoError(t, err)

	trips, total, err := r.ListByOwner(ctx, "user-1", domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)

	assert.EqualValues(t, 3, total)
	require.Len(t, trips, 3)
	// Most recent start date first.
	assert.Equal(t, "Trip 2", trips[0].Title)
	assert.Equal(t, "Trip 0", trips[2].Title)
}

func TestTripRepo_ListByOwner_Pagination(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := tripFixture()
		in.StartDate = time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC)
		_, err := r.Create(ctx, in)
		require.NoError(t, err)
	}

	page, limit := 2, 2
	trips, total, err := r.ListByOwner(ctx, "user-1", domain.NewPaginationParams(&page, &limit))
	require.NoError(t, err)

	assert.EqualValues(t, 5, total, "total counts all pages")
	assert.Len(t, trips, 2)
}

func TestTripRepo_ListByOwner_Empty(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)

	trips, total, err := r.ListByOwner(context.Background(), "nobody", domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, trips)
}

func TestTripRepo_Update(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Title = "Renamed"
	created.Budget = 100 // below nothing committed yet, but also allowed below spend
	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 100.0, got.Budget)
}

func TestTripRepo_Update_WrongOwner(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.OwnerID = "someone-else"
	_, err = r.Update(ctx, created)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_CascadesToActivities(t *testing.T) {
	tx := testTx(t)
	trips := repo.NewTripRepo(tx, domain.IDFormatUUID)
	activities := repo.NewActivityRepo(tx, domain.IDFormatUUID)
	ctx := context.Background()

	created, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = activities.CreateWithinBudget(ctx, domain.Activity{
		TripID:    created.ID,
		Title:     "Snorkeling",
		StartTime: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		Cost:      500,
	})
	require.NoError(t, err)

	require.NoError(t, trips.Delete(ctx, created.ID, "user-1"))

	_, err = trips.GetByID(ctx, created.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	left, err := activities.ListByTripID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, left, "activities must be removed with the trip")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestTripRepo(t, domain.IDFormatUUID)

	err := r.Delete(context.Background(), uuid.NewString(), "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
