package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/app/services"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
)

type stubPersonFinder struct {
	person *models.Person
}

func (s *stubPersonFinder) FindByPhone(ctx context.Context, phone string) (*models.Person, error) {
	if s.person != nil && s.person.Phone == phone {
		return s.person, nil
	}
	return nil, apperrors.ErrPhoneNotRegistered
}

type stubCheckinWriter struct {
	created int
}

func (s *stubCheckinWriter) Create(ctx context.Context, checkin *models.Checkin) error {
	s.created++
	checkin.ID = int64(s.created)
	checkin.CheckedInAt = time.Now()
	return nil
}

type stubEventGetter struct{}

func (s *stubEventGetter) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return nil, apperrors.ErrEventNotFound
}

func newCheckinTestRouter(person *models.Person) (*gin.Engine, *stubCheckinWriter) {
	gin.SetMode(gin.TestMode)

	writer := &stubCheckinWriter{}
	service := services.NewCheckinService(&stubPersonFinder{person: person}, writer, &stubEventGetter{}, zerolog.Nop())
	controller := NewCheckinController(service, zerolog.Nop())

	router := gin.New()
	router.POST("/checkins", controller.CheckIn)
	return router, writer
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestCheckInKnownPhone(t *testing.T) {
	router, writer := newCheckinTestRouter(&models.Person{ID: 7, Name: "Maria Souza", Phone: "41999998888"})

	rec := postJSON(router, "/checkins", `{"phone":"(41) 99999-8888"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, writer.created)
	assert.Contains(t, rec.Body.String(), "Maria Souza")
}

// An unknown phone answers 404 with the registration path so the kiosk
// can send the visitor to the signup form with the number prefilled.
func TestCheckInUnknownPhoneReturnsRegistrationPath(t *testing.T) {
	router, writer := newCheckinTestRouter(nil)

	rec := postJSON(router, "/checkins", `{"phone":"(41) 98888-0000"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, writer.created)
	assert.Contains(t, rec.Body.String(), "/cadastro?telefone=41988880000")
}

func TestCheckInRejectsMissingPhone(t *testing.T) {
	router, writer := newCheckinTestRouter(nil)

	rec := postJSON(router, "/checkins", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, writer.created)
}
