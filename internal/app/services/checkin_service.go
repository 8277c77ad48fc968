package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/phone"
)

// personFinder is the slice of PersonRepository the check-in flow needs
type personFinder interface {
	FindByPhone(ctx context.Context, phone string) (*models.Person, error)
}

// checkinWriter is the slice of CheckinRepository the check-in flow needs
type checkinWriter interface {
	Create(ctx context.Context, checkin *models.Checkin) error
}

// eventGetter is the slice of EventRepository the check-in flow needs
type eventGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// CheckinService handles kiosk attendance by phone number
type CheckinService struct {
	personRepo  personFinder
	checkinRepo checkinWriter
	eventRepo   eventGetter
	logger      zerolog.Logger
}

// NewCheckinService creates a new CheckinService
func NewCheckinService(
	personRepo personFinder,
	checkinRepo checkinWriter,
	eventRepo eventGetter,
	logger zerolog.Logger,
) *CheckinService {
	return &CheckinService{
		personRepo:  personRepo,
		checkinRepo: checkinRepo,
		eventRepo:   eventRepo,
		logger:      logger,
	}
}

// CheckIn records attendance for the person matching the phone number.
// An unknown phone returns ErrPhoneNotRegistered without writing a row;
// the kiosk then redirects to the registration form.
func (s *CheckinService) CheckIn(ctx context.Context, req *dto.CheckinRequest) (*dto.CheckinResponse, error) {
	digits := phone.Normalize(req.Phone)
	if !phone.IsPlausible(digits) {
		return nil, apperrors.ErrInvalidPhone
	}

	if req.EventID != nil {
		if _, err := s.eventRepo.GetByID(ctx, *req.EventID); err != nil {
			return nil, err
		}
	}

	person, err := s.personRepo.FindByPhone(ctx, digits)
	if err != nil {
		return nil, err
	}

	checkin := &models.Checkin{
		PersonID: person.ID,
		EventID:  req.EventID,
	}
	if err := s.checkinRepo.Create(ctx, checkin); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("personID", person.ID).
		Int64("checkinID", checkin.ID).
		Msg("Check-in recorded")

	return &dto.CheckinResponse{
		ID:          checkin.ID,
		PersonID:    person.ID,
		PersonName:  person.Name,
		EventID:     checkin.EventID,
		CheckedInAt: checkin.CheckedInAt,
	}, nil
}
