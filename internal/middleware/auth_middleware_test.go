package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastoral/providencia/internal/app/models"
	"github.com/pastoral/providencia/internal/pkg/apperrors"
	"github.com/pastoral/providencia/internal/pkg/auth"
)

type fakeDirectory struct {
	byUserID map[int64]*models.Person
	byEmail  map[string]*models.Person
}

func (f *fakeDirectory) FindByUserID(ctx context.Context, userID int64) (*models.Person, error) {
	if p, ok := f.byUserID[userID]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPersonNotFound
}

func (f *fakeDirectory) FindByEmail(ctx context.Context, email string) (*models.Person, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, apperrors.ErrPersonNotFound
}

func newAuthTestRouter(accessExp time.Duration, people PersonDirectory) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	m := NewAuthMiddleware(jwtService, people)

	router := gin.New()
	protected := router.Group("/", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserID)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	protected.GET("/admin", m.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, userID int64, email string) string {
	t.Helper()
	token, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: userID, Email: email})
	require.NoError(t, err)
	return token
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(time.Hour, &fakeDirectory{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_007")
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(time.Hour, &fakeDirectory{})
	token := accessTokenFor(t, jwtService, 42, "maria@example.com")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(-time.Minute, &fakeDirectory{})
	token := accessTokenFor(t, jwtService, 42, "maria@example.com")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_005")
}

func TestAdminRequiredBlocksParticipant(t *testing.T) {
	people := &fakeDirectory{byUserID: map[int64]*models.Person{
		42: {ID: 7, Name: "Maria Souza", Role: models.RoleParticipant, Phone: "41999998888"},
	}}
	router, jwtService := newAuthTestRouter(time.Hour, people)
	token := accessTokenFor(t, jwtService, 42, "maria@example.com")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRequiredAllowsAdministrator(t *testing.T) {
	people := &fakeDirectory{byUserID: map[int64]*models.Person{
		42: {ID: 7, Name: "Maria Souza", Role: models.RoleAdministrator, Phone: "41999998888"},
	}}
	router, jwtService := newAuthTestRouter(time.Hour, people)
	token := accessTokenFor(t, jwtService, 42, "maria@example.com")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRequiredResolvesByEmailFallback(t *testing.T) {
	people := &fakeDirectory{byEmail: map[string]*models.Person{
		"admin@example.com": {ID: 1, Name: "Administrador", Role: models.RoleAdministrator, Phone: "41999990000"},
	}}
	router, jwtService := newAuthTestRouter(time.Hour, people)
	token := accessTokenFor(t, jwtService, 42, "admin@example.com")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
