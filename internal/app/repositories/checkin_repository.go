package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastoral/providencia/internal/app/models"
)

// CheckinRepository handles attendance database operations
type CheckinRepository struct {
	db *pgxpool.Pool
}

// NewCheckinRepository creates a new CheckinRepository
func NewCheckinRepository(db *pgxpool.Pool) *CheckinRepository {
	return &CheckinRepository{
		db: db,
	}
}

// Create inserts a new attendance row and sets the generated ID
func (r *CheckinRepository) Create(ctx context.Context, checkin *models.Checkin) error {
	query := `
		INSERT INTO checkins (person_id, event_id)
		VALUES ($1, $2)
		RETURNING id, checked_in_at
	`

	err := r.db.QueryRow(ctx, query, checkin.PersonID, checkin.EventID).
		Scan(&checkin.ID, &checkin.CheckedInAt)
	if err != nil {
		return fmt.Errorf("error creating check-in: %w", err)
	}

	return nil
}

// ListByEvent retrieves an event's attendance with the person joined in,
// most recent first.
func (r *CheckinRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.CheckinWithPerson, error) {
	query := `
		SELECT c.id, c.checked_in_at, p.id, p.name, p.phone
		FROM checkins c
		JOIN people p ON p.id = c.person_id
		WHERE c.event_id = $1
		ORDER BY c.checked_in_at DESC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing event check-ins: %w", err)
	}
	defer rows.Close()

	var checkins []*models.CheckinWithPerson
	for rows.Next() {
		var c models.CheckinWithPerson
		if err := rows.Scan(
			&c.ID,
			&c.CheckedInAt,
			&c.PersonID,
			&c.PersonName,
			&c.PersonPhone,
		); err != nil {
			return nil, fmt.Errorf("error scanning check-in row: %w", err)
		}
		checkins = append(checkins, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check-in rows: %w", err)
	}

	return checkins, nil
}
