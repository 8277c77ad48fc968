package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/repositories"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
)

type stubPersonStore struct {
	byPhone map[string]*models.Person
	created []*models.Person
}

func (s *stubPersonStore) Create(ctx context.Context, person *models.Person) error {
	person.ID = int64(len(s.created) + 1)
	s.created = append(s.created, person)
	return nil
}

func (s *stubPersonStore) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	return nil, apperrors.ErrPersonNotFound
}

func (s *stubPersonStore) FindByPhone(ctx context.Context, phone string) (*models.Person, error) {
	if p, ok := s.byPhone[phone]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPhoneNotRegistered
}

func (s *stubPersonStore) Update(ctx context.Context, person *models.Person) error {
	return apperrors.ErrPersonNotFound
}

func (s *stubPersonStore) Delete(ctx context.Context, id int64) error {
	return apperrors.ErrPersonNotFound
}

func (s *stubPersonStore) List(ctx context.Context, filter repositories.PersonFilter) ([]*models.Person, int64, error) {
	return nil, 0, nil
}

func (s *stubPersonStore) ListWithoutCompany(ctx context.Context) ([]*models.Person, error) {
	return nil, nil
}

type stubSessionRevoker struct{}

func (s *stubSessionRevoker) RevokeAllForUser(ctx context.Context, userID int64) error {
	return nil
}

func newRegistrationTestRouter(store *stubPersonStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewPersonService(store, &stubSessionRevoker{}, zerolog.Nop())
	controller := NewPersonController(service, zerolog.Nop())

	router := gin.New()
	router.POST("/registrations", controller.Register)
	return router
}

func TestRegisterCreatesParticipant(t *testing.T) {
	store := &stubPersonStore{byPhone: map[string]*models.Person{}}
	router := newRegistrationTestRouter(store)

	rec := postJSON(router, "/registrations", `{"name":"Ana Beatriz","phone":"(41) 99999-8888"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, "41999998888", store.created[0].Phone)
	assert.Equal(t, models.RoleParticipant, store.created[0].Role)
}

// Binding rejects an empty name before the service or database is touched.
func TestRegisterEmptyNameRejected(t *testing.T) {
	store := &stubPersonStore{byPhone: map[string]*models.Person{}}
	router := newRegistrationTestRouter(store)

	rec := postJSON(router, "/registrations", `{"name":"","phone":"41999998888"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.created)
}

func TestRegisterExistingPhoneReturnsExistingRecord(t *testing.T) {
	store := &stubPersonStore{byPhone: map[string]*models.Person{
		"41999998888": {ID: 7, Name: "Maria Souza", Phone: "41999998888", Role: models.RoleParticipant},
	}}
	router := newRegistrationTestRouter(store)

	rec := postJSON(router, "/registrations", `{"name":"Maria S.","phone":"41999998888"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, store.created)
	assert.Contains(t, rec.Body.String(), "Maria Souza")
}

func TestRegisterImplausiblePhone(t *testing.T) {
	store := &stubPersonStore{byPhone: map[string]*models.Person{}}
	router := newRegistrationTestRouter(store)

	rec := postJSON(router, "/registrations", `{"name":"Ana Beatriz","phone":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.created)
}
