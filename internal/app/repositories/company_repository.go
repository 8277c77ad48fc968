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
	"github.com/pastoral/providencia/internal/pkg/dberrors"
	"github.com/pastoral/providencia/internal/pkg/logger"
)

// CompanyFilter narrows the company directory listing
type CompanyFilter struct {
	Segment  string
	City     string
	Search   string
	Page     int
	PageSize int
}

// CompanyWithOwner pairs a company with its owner's name for listings
type CompanyWithOwner struct {
	models.Company
	OwnerName *string
}

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const companyColumns = "id, name, description, segment, city, phone, whatsapp, email, website, instagram, person_id, logo_url, gallery, created_at, updated_at"

func scanCompany(row pgx.Row) (*models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Segment,
		&c.City,
		&c.Phone,
		&c.Whatsapp,
		&c.Email,
		&c.Website,
		&c.Instagram,
		&c.PersonID,
		&c.LogoURL,
		&c.Gallery,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new company and sets the generated ID
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, description, segment, city, phone, whatsapp, email, website, instagram, person_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, gallery, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		company.Name, company.Description, company.Segment, company.City,
		company.Phone, company.Whatsapp, company.Email, company.Website,
		company.Instagram, company.PersonID,
	).Scan(&company.ID, &company.Gallery, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrPersonHasCompany
		}
		return fmt.Errorf("error creating company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns)

	company, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return company, nil
}

// FindByPersonID retrieves the company linked to a person, if any
func (r *CompanyRepository) FindByPersonID(ctx context.Context, personID int64) (*models.Company, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM companies
		WHERE person_id = $1
		ORDER BY id ASC
		LIMIT 1
	`, companyColumns)

	company, err := scanCompany(r.db.QueryRow(ctx, query, personID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoLinkedCompany
		}
		return nil, fmt.Errorf("error retrieving company by owner: %w", err)
	}

	return company, nil
}

// Update replaces a company's editable fields; images change through
// UpdateLogo and UpdateGallery.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, description = $2, segment = $3, city = $4, phone = $5,
		    whatsapp = $6, email = $7, website = $8, instagram = $9, person_id = $10,
		    updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		company.Name, company.Description, company.Segment, company.City,
		company.Phone, company.Whatsapp, company.Email, company.Website,
		company.Instagram, company.PersonID, company.ID,
	).Scan(&company.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCompanyNotFound
		}
		return fmt.Errorf("error updating company: %w", err)
	}

	return nil
}

// UpdateLogo stores the company's logo URL
func (r *CompanyRepository) UpdateLogo(ctx context.Context, id int64, logoURL *string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE companies SET logo_url = $1, updated_at = NOW() WHERE id = $2`, logoURL, id)
	if err != nil {
		return fmt.Errorf("error updating company logo: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// UpdateGallery replaces the company's gallery image URLs
func (r *CompanyRepository) UpdateGallery(ctx context.Context, id int64, gallery []string) error {
	if gallery == nil {
		gallery = []string{}
	}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE companies SET gallery = $1, updated_at = NOW() WHERE id = $2`, gallery, id)
	if err != nil {
		return fmt.Errorf("error updating company gallery: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company record
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// List retrieves companies matching the filter alphabetically, with the
// owner's name joined in and a total count for pagination.
func (r *CompanyRepository) List(ctx context.Context, filter CompanyFilter) ([]*CompanyWithOwner, int64, error) {
	cols := "co.id, co.name, co.description, co.segment, co.city, co.phone, co.whatsapp, co.email, co.website, co.instagram, co.person_id, co.logo_url, co.gallery, co.created_at, co.updated_at, p.name"
	base := r.sb.Select(cols).
		From("companies co").
		LeftJoin("people p ON p.id = co.person_id")
	countQuery := r.sb.Select("COUNT(*)").From("companies co")

	if filter.Segment != "" {
		base = base.Where(squirrel.Eq{"co.segment": filter.Segment})
		countQuery = countQuery.Where(squirrel.Eq{"co.segment": filter.Segment})
	}
	if filter.City != "" {
		base = base.Where(squirrel.Eq{"co.city": filter.City})
		countQuery = countQuery.Where(squirrel.Eq{"co.city": filter.City})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"co.name": like},
			squirrel.ILike{"co.description": like},
			squirrel.ILike{"co.segment": like},
		}
		base = base.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	var total int64
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build company count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting companies: %w", err)
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
		OrderBy("co.name ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build company list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing company list query")
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*CompanyWithOwner
	for rows.Next() {
		var c CompanyWithOwner
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Segment,
			&c.City,
			&c.Phone,
			&c.Whatsapp,
			&c.Email,
			&c.Website,
			&c.Instagram,
			&c.PersonID,
			&c.LogoURL,
			&c.Gallery,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.OwnerName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating company rows: %w", err)
	}

	return companies, total, nil
}
