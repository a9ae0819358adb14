package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// All read and write operations are scoped by ownerID: a trip is visible to
// and mutable by its owner only.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// generated id and DB-populated created_at / updated_at).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by id, scoped to the given owner.
	// Returns domain.ErrNotFound if no such trip exists under that owner.
	GetByID(ctx context.Context, id, ownerID string) (domain.Trip, error)

	// ListByOwner returns one page of the owner's trips ordered by
	// start_date descending, plus the total count across all pages.
	ListByOwner(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if no trip with that ID
	// exists under the trip's owner.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and all of its activities in one transaction.
	// The cascade is done here rather than by a foreign-key constraint
	// because activities.trip_id carries no FK (the id format varies across
	// deployments). Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id, ownerID string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db       db
	idFormat domain.IDFormat
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation. idFormat is immutable for the lifetime of the repo.
func NewTripRepo(db db, idFormat domain.IDFormat) TripRepo {
	return &pgTripRepo{db: db, idFormat: idFormat}
}

const tripColumns = `id, owner_id, title, destination, start_date, end_date,
		budget, companions, status, image, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	id, err := nextID(ctx, r.db, r.idFormat, "trip_ids")
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO trips (id, owner_id, title, destination, start_date, end_date,
		                   budget, companions, status, image)
		VALUES (@id, @owner_id, @title, @destination, @start_date, @end_date,
		        @budget, @companions, @status, @image)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          id,
		"owner_id":    trip.OwnerID,
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget,
		"companions":  trip.Companions,
		"status":      trip.Status,
		"image":       trip.Image,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, id, ownerID string) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns one page of the owner's trips, most recent start first.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY start_date DESC, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"owner_id": ownerID, "limit": p.Limit, "offset": p.Offset()}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated
// record. The budget may be set below already-committed spend; no
// retroactive validation happens here — the resulting negative remaining
// budget is simply reported on the next read.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET title       = @title,
		    destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    budget      = @budget,
		    companions  = @companions,
		    status      = @status,
		    image       = @image,
		    updated_at  = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"owner_id":    trip.OwnerID,
		"title":       trip.Title,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget,
		"companions":  trip.Companions,
		"status":      trip.Status,
		"image":       trip.Image,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and its activities atomically.
func (r *pgTripRepo) Delete(ctx context.Context, id, ownerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	args := pgx.NamedArgs{"id": id, "owner_id": ownerID}

	tag, err := tx.Exec(ctx, `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`, args)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE trip_id = @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: activities: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: commit: %w", err)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the date-only and numeric conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
	)

	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Destination, &startDate, &endDate,
		&t.Budget, &t.Companions, &status, &t.Image, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Status = domain.TripStatus(status)

	return t, nil
}

// scanTripWithTotal scans a trip row that carries a window-function total.
func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	var (
		t         domain.Trip
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
		total     int64
	)

	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Destination, &startDate, &endDate,
		&t.Budget, &t.Companions, &status, &t.Image, &t.CreatedAt, &t.UpdatedAt, &total)
	if err != nil {
		return domain.Trip{}, 0, err
	}

	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Status = domain.TripStatus(status)

	return t, total, nil
}
