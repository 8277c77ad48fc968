package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/models/dto"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
)

type fakePersonFinder struct {
	byPhone map[string]*models.Person
}

func (f *fakePersonFinder) FindByPhone(ctx context.Context, phone string) (*models.Person, error) {
	if p, ok := f.byPhone[phone]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPhoneNotRegistered
}

type fakeCheckinWriter struct {
	created []*models.Checkin
	err     error
}

func (f *fakeCheckinWriter) Create(ctx context.Context, checkin *models.Checkin) error {
	if f.err != nil {
		return f.err
	}
	checkin.ID = int64(len(f.created) + 1)
	checkin.CheckedInAt = time.Now()
	f.created = append(f.created, checkin)
	return nil
}

type fakeEventGetter struct {
	events map[int64]*models.Event
}

func (f *fakeEventGetter) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEventNotFound
}

func newCheckinFixture() (*CheckinService, *fakeCheckinWriter) {
	people := &fakePersonFinder{byPhone: map[string]*models.Person{
		"41999998888": {ID: 7, Name: "Maria Souza", Phone: "41999998888"},
	}}
	checkins := &fakeCheckinWriter{}
	events := &fakeEventGetter{events: map[int64]*models.Event{
		3: {ID: 3, Name: "Encontro Mensal"},
	}}
	return NewCheckinService(people, checkins, events, zerolog.Nop()), checkins
}

func TestCheckInRecordsAttendance(t *testing.T) {
	svc, checkins := newCheckinFixture()

	resp, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "(41) 99999-8888"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.PersonID)
	assert.Equal(t, "Maria Souza", resp.PersonName)
	assert.Nil(t, resp.EventID)
	require.Len(t, checkins.created, 1)
	assert.Equal(t, int64(7), checkins.created[0].PersonID)
}

func TestCheckInWithEvent(t *testing.T) {
	svc, checkins := newCheckinFixture()
	eventID := int64(3)

	resp, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "41999998888", EventID: &eventID})
	require.NoError(t, err)

	require.NotNil(t, resp.EventID)
	assert.Equal(t, eventID, *resp.EventID)
	require.Len(t, checkins.created, 1)
}

func TestCheckInUnknownEvent(t *testing.T) {
	svc, checkins := newCheckinFixture()
	eventID := int64(99)

	_, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "41999998888", EventID: &eventID})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	assert.Empty(t, checkins.created)
}

func TestCheckInUnknownPhoneWritesNothing(t *testing.T) {
	svc, checkins := newCheckinFixture()

	_, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "(41) 98888-0000"})
	assert.ErrorIs(t, err, apperrors.ErrPhoneNotRegistered)
	assert.Empty(t, checkins.created)
}

func TestCheckInImplausiblePhone(t *testing.T) {
	svc, checkins := newCheckinFixture()

	_, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "999"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPhone)
	assert.Empty(t, checkins.created)
}

// Resubmitting the same phone is allowed and creates another row.
func TestCheckInAllowsRepeat(t *testing.T) {
	svc, checkins := newCheckinFixture()

	_, err := svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "41999998888"})
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), &dto.CheckinRequest{Phone: "41999998888"})
	require.NoError(t, err)

	assert.Len(t, checkins.created, 2)
}
