package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// Activities are immutable after creation in this engine's scope: there is
// no update operation, and deletion happens only through the trip cascade.
type ActivityRepo interface {
	// CreateWithinBudget inserts a new activity only if its cost fits in the
	// trip's remaining budget. The parent trip row is locked for the duration
	// of the transaction, so two concurrent adds against the same trip
	// serialize and the second one sees the first one's cost.
	//
	// Returns domain.ErrBudgetExceeded when the guard rejects the insert and
	// domain.ErrNotFound when the trip row does not exist.
	CreateWithinBudget(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// ListByTripID returns all activities for a trip ordered by start_time
	// ascending, with corrupt (NULL) start times first.
	ListByTripID(ctx context.Context, tripID string) ([]domain.Activity, error)

	// ListByTripIDs returns the activities of many trips in one query,
	// keyed by trip id. Trips with no activities have no map entry.
	ListByTripIDs(ctx context.Context, tripIDs []string) (map[string][]domain.Activity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db       db
	idFormat domain.IDFormat
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewActivityRepo(db db, idFormat domain.IDFormat) ActivityRepo {
	return &pgActivityRepo{db: db, idFormat: idFormat}
}

const activityColumns = `id, trip_id, title, location, start_time, cost, created_at`

// CreateWithinBudget implements the read-check-write sequence as a lock plus
// a guarded INSERT inside one transaction.
//
// The lock and the guard must be separate statements. Under READ COMMITTED a
// statement's snapshot is taken at statement start; a single statement that
// both waits on the trip-row lock and sums the activities table would, after
// the wait, still sum against its original snapshot and miss the cost a
// concurrent add just committed. With two statements the guard runs on a
// fresh snapshot taken after the lock is acquired, so the second of two
// concurrent adds sees the first one's cost in the SUM.
//
// Non-finite stored costs are excluded from the sum (NaN fails the cost =
// cost predicate). Damaged historical rows must not block new writes; the
// validation they would have contributed to is skipped, matching the
// service-level fail-open rule.
func (r *pgActivityRepo) CreateWithinBudget(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	id, err := nextID(ctx, r.db, r.idFormat, "activity_ids")
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM trips WHERE id = @trip_id FOR UPDATE`,
		pgx.NamedArgs{"trip_id": activity.TripID}).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: %w", domain.ErrNotFound)
		}
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: lock: %w", err)
	}

	const q = `
		INSERT INTO activities (id, trip_id, title, location, start_time, cost)
		SELECT @id, t.id, @title, @location, @start_time, @cost
		FROM trips t
		WHERE t.id = @trip_id
		  AND t.budget - COALESCE(
			(SELECT SUM(a.cost) FROM activities a
			 WHERE a.trip_id = t.id AND a.cost = a.cost), 0) >= @cost
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":         id,
		"trip_id":    activity.TripID,
		"title":      activity.Title,
		"location":   activity.Location,
		"start_time": activity.StartTime,
		"cost":       activity.Cost,
	}

	result, err := scanActivity(tx.QueryRow(ctx, q, args))
	if err != nil {
		// No row back with the trip row locked and known to exist means the
		// guard filtered the insert out: the budget is overspent.
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: %w", domain.ErrBudgetExceeded)
		}
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.CreateWithinBudget: commit: %w", err)
	}
	return result, nil
}

// ListByTripID returns a trip's activities in itinerary order.
func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID string) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY start_time ASC NULLS FIRST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: rows: %w", err)
	}

	return activities, nil
}

// ListByTripIDs fetches activities for a whole page of trips at once,
// avoiding an N+1 query in the trip list endpoint.
func (r *pgActivityRepo) ListByTripIDs(ctx context.Context, tripIDs []string) (map[string][]domain.Activity, error) {
	if len(tripIDs) == 0 {
		return map[string][]domain.Activity{}, nil
	}

	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = ANY(@trip_ids)
		ORDER BY trip_id, start_time ASC NULLS FIRST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_ids": tripIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripIDs: %w", err)
	}
	defer rows.Close()

	byTrip := make(map[string][]domain.Activity)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripIDs: scan: %w", err)
		}
		byTrip[a.TripID] = append(byTrip[a.TripID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripIDs: rows: %w", err)
	}

	return byTrip, nil
}

// scanActivity maps a single database row into a domain.Activity.
// A NULL start_time (corrupt legacy data) scans to the zero time.Time, which
// downstream projection treats as "no usable timestamp" instead of an error.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a         domain.Activity
		startTime pgtype.Timestamptz
	)

	err := s.Scan(&a.ID, &a.TripID, &a.Title, &a.Location, &startTime, &a.Cost, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	if startTime.Valid {
		a.StartTime = startTime.Time
	}

	return a, nil
}
