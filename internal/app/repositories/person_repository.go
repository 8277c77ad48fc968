package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/logger"
)

// PersonFilter narrows the people listing
type PersonFilter struct {
	Search     string
	Role       models.RoleType
	Attendance string  // "attended" or "never"
	EventIDs   []int64 // attendees of any of these events
	Page       int
	PageSize   int
}

// PersonRepository handles person database operations
type PersonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const personColumns = "id, name, phone, email, role, user_id, created_at, updated_at"

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.Role,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new person and sets the generated ID
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO people (name, phone, email, role, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		person.Name, person.Phone, person.Email, person.Role, person.UserID,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating person: %w", err)
	}

	return nil
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM people WHERE id = $1`, personColumns)

	person, err := scanPerson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, fmt.Errorf("error retrieving person: %w", err)
	}

	return person, nil
}

// FindByPhone retrieves the person matching a normalized phone number.
// Duplicate phones resolve to the oldest record so kiosk check-ins stay
// deterministic.
func (r *PersonRepository) FindByPhone(ctx context.Context, phone string) (*models.Person, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM people
		WHERE phone = $1
		ORDER BY id ASC
		LIMIT 1
	`, personColumns)

	person, err := scanPerson(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPhoneNotRegistered
		}
		return nil, fmt.Errorf("error retrieving person by phone: %w", err)
	}

	return person, nil
}

// FindByEmail retrieves a person by email, case insensitively
func (r *PersonRepository) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM people
		WHERE LOWER(email) = LOWER($1)
		ORDER BY id ASC
		LIMIT 1
	`, personColumns)

	person, err := scanPerson(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, fmt.Errorf("error retrieving person by email: %w", err)
	}

	return person, nil
}

// FindByUserID retrieves the person linked to a login account
func (r *PersonRepository) FindByUserID(ctx context.Context, userID int64) (*models.Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM people WHERE user_id = $1 LIMIT 1`, personColumns)

	person, err := scanPerson(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, fmt.Errorf("error retrieving person by user: %w", err)
	}

	return person, nil
}

// Update replaces a person's editable fields
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	query := `
		UPDATE people
		SET name = $1, phone = $2, email = $3, role = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		person.Name, person.Phone, person.Email, person.Role, person.ID,
	).Scan(&person.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPersonNotFound
		}
		return fmt.Errorf("error updating person: %w", err)
	}

	return nil
}

// LinkUser attaches a login account to a person record
func (r *PersonRepository) LinkUser(ctx context.Context, personID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE people SET user_id = $1, updated_at = NOW() WHERE id = $2`, userID, personID)
	if err != nil {
		return fmt.Errorf("error linking user to person: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// Delete removes a person; check-ins cascade with it
func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting person: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// List retrieves people matching the filter, ordered by name, with a
// total count for pagination.
func (r *PersonRepository) List(ctx context.Context, filter PersonFilter) ([]*models.Person, int64, error) {
	base := r.sb.Select(personColumns).From("people")
	countQuery := r.sb.Select("COUNT(*)").From("people")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"phone": like},
			squirrel.ILike{"email": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.Role != "" {
		base = base.Where(squirrel.Eq{"role": filter.Role})
		countQuery = countQuery.Where(squirrel.Eq{"role": filter.Role})
	}

	switch filter.Attendance {
	case "attended":
		cond := squirrel.Expr("EXISTS (SELECT 1 FROM checkins c WHERE c.person_id = people.id)")
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	case "never":
		cond := squirrel.Expr("NOT EXISTS (SELECT 1 FROM checkins c WHERE c.person_id = people.id)")
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if len(filter.EventIDs) > 0 {
		cond := squirrel.Expr(
			"EXISTS (SELECT 1 FROM checkins c WHERE c.person_id = people.id AND c.event_id = ANY(?))",
			filter.EventIDs)
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	var total int64
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build people count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting people: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	sql, args, err := base.
		OrderBy("name ASC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build people list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing people list query")
		return nil, 0, fmt.Errorf("error listing people: %w", err)
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning person row: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating people rows: %w", err)
	}

	return people, total, nil
}

// ListWithoutCompany retrieves people with no linked company, for the
// company owner picker.
func (r *PersonRepository) ListWithoutCompany(ctx context.Context) ([]*models.Person, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM people
		WHERE NOT EXISTS (SELECT 1 FROM companies co WHERE co.person_id = people.id)
		ORDER BY name ASC
	`, personColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing people without company: %w", err)
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning person row: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people rows: %w", err)
	}

	return people, nil
}
