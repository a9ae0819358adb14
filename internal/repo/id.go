package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/tmarques/tripflow/backend/internal/domain"
)

// nextID generates a new identifier in the configured format.
//
// The format is fixed at repo construction (domain.IDFormat) — there is no
// process-global switch. UUID ids are generated client-side; numeric ids
// come from a database sequence so they stay unique across instances, which
// is what legacy deployments migrated from the old system expect.
func nextID(ctx context.Context, db db, format domain.IDFormat, sequence string) (string, error) {
	if format == domain.IDFormatUUID {
		return uuid.NewString(), nil
	}

	var n int64
	// Sequence names are fixed constants within this package, never user input.
	row := db.QueryRow(ctx, fmt.Sprintf(`SELECT nextval('%s')`, sequence))
	if err := row.Scan(&n); err != nil {
		return "", fmt.Errorf("next id from %s: %w", sequence, err)
	}
	return strconv.FormatInt(n, 10), nil
}
