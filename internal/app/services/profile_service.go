package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/helpers"
	"github.com/pastoral/providencia/internal/pkg/phone"
)

// ProfileService handles the authenticated participant's own data
type ProfileService struct {
	personRepo     *repositories.PersonRepository
	companyRepo    *repositories.CompanyRepository
	companyService *CompanyService
	logger         zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	personRepo *repositories.PersonRepository,
	companyRepo *repositories.CompanyRepository,
	companyService *CompanyService,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		personRepo:     personRepo,
		companyRepo:    companyRepo,
		companyService: companyService,
		logger:         logger,
	}
}

// resolvePerson finds the person behind a login account. Accounts created
// before the user link existed fall back to the email join.
func (s *ProfileService) resolvePerson(ctx context.Context, userID int64, email string) (*models.Person, error) {
	person, err := s.personRepo.FindByUserID(ctx, userID)
	if err == nil {
		return person, nil
	}
	if !errors.Is(err, apperrors.ErrPersonNotFound) {
		return nil, err
	}
	return s.personRepo.FindByEmail(ctx, email)
}

// GetProfile retrieves the caller's person record
func (s *ProfileService) GetProfile(ctx context.Context, userID int64, email string) (*dto.PersonResponse, error) {
	person, err := s.resolvePerson(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// UpdateProfile edits the caller's own person record. Role is not
// editable here.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, email string, req *dto.UpdateProfileRequest) (*dto.PersonResponse, error) {
	person, err := s.resolvePerson(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	digits := phone.Normalize(req.Phone)
	if !phone.IsPlausible(digits) {
		return nil, apperrors.ErrInvalidPhone
	}

	person.Name = strings.TrimSpace(req.Name)
	person.Phone = digits
	if trimmed := strings.TrimSpace(req.Email); trimmed != "" {
		person.Email = helpers.NullableString(trimmed)
	}

	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}

	resp := toPersonResponse(person)
	return &resp, nil
}

// GetCompany retrieves the caller's linked company
func (s *ProfileService) GetCompany(ctx context.Context, userID int64, email string) (*dto.CompanyResponse, error) {
	person, err := s.resolvePerson(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByPersonID(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	resp := toCompanyResponse(company, person.Name)
	return &resp, nil
}

// UpdateCompany edits the caller's linked company. Ownership cannot be
// transferred from the profile page.
func (s *ProfileService) UpdateCompany(ctx context.Context, userID int64, email string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	person, err := s.resolvePerson(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByPersonID(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	req.PersonID = &person.ID
	return s.companyService.Update(ctx, company.ID, req)
}

// UploadCompanyImage stores a logo or gallery image on the caller's
// linked company.
func (s *ProfileService) UploadCompanyImage(ctx context.Context, userID int64, email, kind string, file *multipart.FileHeader) (*dto.CompanyImageResponse, error) {
	person, err := s.resolvePerson(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindByPersonID(ctx, person.ID)
	if err != nil {
		return nil, err
	}

	return s.companyService.UploadImage(ctx, company.ID, kind, file)
}
