package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/helpers"
	"github.com/pastoral/providencia/internal/pkg/phone"
)

// personStore is the slice of PersonRepository the service needs
type personStore interface {
	Create(ctx context.Context, person *models.Person) error
	GetByID(ctx context.Context, id int64) (*models.Person, error)
	FindByPhone(ctx context.Context, phone string) (*models.Person, error)
	Update(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter repositories.PersonFilter) ([]*models.Person, int64, error)
	ListWithoutCompany(ctx context.Context) ([]*models.Person, error)
}

// sessionRevoker invalidates a login account's refresh tokens
type sessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// PersonService handles registered people
type PersonService struct {
	personRepo personStore
	tokenRepo  sessionRevoker
	logger     zerolog.Logger
}

// NewPersonService creates a new PersonService
func NewPersonService(
	personRepo personStore,
	tokenRepo sessionRevoker,
	logger zerolog.Logger,
) *PersonService {
	return &PersonService{
		personRepo: personRepo,
		tokenRepo:  tokenRepo,
		logger:     logger,
	}
}

func toPersonResponse(p *models.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:             p.ID,
		Name:           p.Name,
		Phone:          p.Phone,
		PhoneFormatted: phone.Format(p.Phone),
		Email:          helpers.StringOrEmpty(p.Email),
		Role:           string(p.Role),
		HasAccount:     p.UserID != nil,
		CreatedAt:      p.CreatedAt,
	}
}

// Register handles public self-registration from the signup form. A phone
// already on file returns the existing record instead of a duplicate.
func (s *PersonService) Register(ctx context.Context, req *dto.RegistrationRequest) (*dto.PersonResponse, error) {
	digits := phone.Normalize(req.Phone)
	if !phone.IsPlausible(digits) {
		return nil, apperrors.ErrInvalidPhone
	}

	if existing, err := s.personRepo.FindByPhone(ctx, digits); err == nil {
		resp := toPersonResponse(existing)
		return &resp, nil
	} else if !errors.Is(err, apperrors.ErrPhoneNotRegistered) {
		return nil, err
	}

	person := &models.Person{
		Name:  strings.TrimSpace(req.Name),
		Phone: digits,
		Email: helpers.NullableString(strings.TrimSpace(req.Email)),
		Role:  models.RoleParticipant,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("personID", person.ID).Msg("Participant registered")

	resp := toPersonResponse(person)
	return &resp, nil
}

// Create handles an admin creating a person record
func (s *PersonService) Create(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	digits := phone.Normalize(req.Phone)
	if !phone.IsPlausible(digits) {
		return nil, apperrors.ErrInvalidPhone
	}

	role := models.RoleType(req.Role)
	if req.Role == "" {
		role = models.RoleParticipant
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role")
	}

	person := &models.Person{
		Name:  strings.TrimSpace(req.Name),
		Phone: digits,
		Email: helpers.NullableString(strings.TrimSpace(req.Email)),
		Role:  role,
	}
	if err := s.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	resp := toPersonResponse(person)
	return &resp, nil
}

// GetByID retrieves a single person
func (s *PersonService) GetByID(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

// Update handles an admin updating a person record
func (s *PersonService) Update(ctx context.Context, id int64, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	digits := phone.Normalize(req.Phone)
	if !phone.IsPlausible(digits) {
		return nil, apperrors.ErrInvalidPhone
	}

	person.Name = strings.TrimSpace(req.Name)
	person.Phone = digits
	person.Email = helpers.NullableString(strings.TrimSpace(req.Email))
	if req.Role != "" {
		role := models.RoleType(req.Role)
		if !role.Valid() {
			return nil, apperrors.NewValidationError("unknown role")
		}
		person.Role = role
	}

	if err := s.personRepo.Update(ctx, person); err != nil {
		return nil, err
	}

	resp := toPersonResponse(person)
	return &resp, nil
}

// Delete removes a person and their attendance history. Any linked login
// account keeps its row but loses its active sessions.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	person, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.personRepo.Delete(ctx, id); err != nil {
		return err
	}

	if person.UserID != nil {
		if err := s.tokenRepo.RevokeAllForUser(ctx, *person.UserID); err != nil {
			s.logger.Warn().Err(err).Int64("userID", *person.UserID).Msg("Failed to revoke sessions for deleted person")
		}
	}

	s.logger.Info().Int64("personID", id).Msg("Person deleted")
	return nil
}

// List retrieves people matching the admin panel filters
func (s *PersonService) List(ctx context.Context, req *dto.PersonFilterRequest) (*dto.PersonListResponse, error) {
	filter := repositories.PersonFilter{
		Search:     strings.TrimSpace(req.Search),
		Role:       models.RoleType(req.Role),
		Attendance: req.Attendance,
		EventIDs:   req.EventIDs,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	people, total, err := s.personRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.PersonListResponse{
		People:   make([]dto.PersonResponse, 0, len(people)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.PageSize < 1 {
		resp.PageSize = 20
	}
	for _, p := range people {
		resp.People = append(resp.People, toPersonResponse(p))
	}

	return resp, nil
}

// ListWithoutCompany retrieves people eligible to own a new company
func (s *PersonService) ListWithoutCompany(ctx context.Context) ([]dto.PersonResponse, error) {
	people, err := s.personRepo.ListWithoutCompany(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PersonResponse, 0, len(people))
	for _, p := range people {
		responses = append(responses, toPersonResponse(p))
	}
	return responses, nil
}
