package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/app/repositories"
)

// EventService handles event operations
type EventService struct {
	eventRepo   *repositories.EventRepository
	checkinRepo *repositories.CheckinRepository
	logger      zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	checkinRepo *repositories.CheckinRepository,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		checkinRepo: checkinRepo,
		logger:      logger,
	}
}

func toEventResponse(e *models.Event, checkinCount int64) dto.EventResponse {
	return dto.EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		EventDate:    e.EventDate,
		Location:     e.Location,
		Capacity:     e.Capacity,
		CheckinCount: checkinCount,
		CreatedAt:    e.CreatedAt,
	}
}

// Create handles an admin creating an event
func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &models.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		EventDate:   req.EventDate,
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Str("name", event.Name).Msg("Event created")

	resp := toEventResponse(event, 0)
	return &resp, nil
}

// GetByID retrieves a single event with its attendance count
func (s *EventService) GetByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.eventRepo.CountCheckins(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toEventResponse(event, count)
	return &resp, nil
}

// Update handles an admin updating an event
func (s *EventService) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Name = strings.TrimSpace(req.Name)
	event.Description = strings.TrimSpace(req.Description)
	event.EventDate = req.EventDate
	event.Location = strings.TrimSpace(req.Location)
	event.Capacity = req.Capacity

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	count, err := s.eventRepo.CountCheckins(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toEventResponse(event, count)
	return &resp, nil
}

// Delete removes an event and its attendance history
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("eventID", id).Msg("Event deleted")
	return nil
}

// ListAll retrieves every event for the admin panel, newest date first
func (s *EventService) ListAll(ctx context.Context) (*dto.EventListResponse, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildListResponse(ctx, events)
}

// ListUpcoming retrieves events from now onward for the public site.
// The dashboard passes limit=1 for its next-event card.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) (*dto.EventListResponse, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, time.Now(), limit)
	if err != nil {
		return nil, err
	}
	return s.buildListResponse(ctx, events)
}

// ListCheckins retrieves an event's attendance, most recent first
func (s *EventService) ListCheckins(ctx context.Context, eventID int64) (*dto.CheckinListResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	checkins, err := s.checkinRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CheckinListResponse{
		Checkins: make([]dto.CheckinListItem, 0, len(checkins)),
		Total:    int64(len(checkins)),
	}
	for _, c := range checkins {
		resp.Checkins = append(resp.Checkins, dto.CheckinListItem{
			ID:          c.ID,
			CheckedInAt: c.CheckedInAt,
			PersonID:    c.PersonID,
			PersonName:  c.PersonName,
			PersonPhone: c.PersonPhone,
		})
	}

	return resp, nil
}

func (s *EventService) buildListResponse(ctx context.Context, events []*models.Event) (*dto.EventListResponse, error) {
	resp := &dto.EventListResponse{
		Events: make([]dto.EventResponse, 0, len(events)),
		Total:  int64(len(events)),
	}
	for _, e := range events {
		count, err := s.eventRepo.CountCheckins(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		resp.Events = append(resp.Events, toEventResponse(e, count))
	}
	return resp, nil
}
