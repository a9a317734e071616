package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/ratelimit"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestCounter returns a rate limit counter that is never exercised by these tests.
func newTestCounter() *ratelimit.Counter {
	return ratelimit.NewCounter(time.Minute, logger.Nop())
}

// TestNewHandlers_HTTP verifies that a configured HTTP address produces an
// HTTP handler. Construction does not dereference services, so nil is safe.
func TestNewHandlers_HTTP(t *testing.T) {
	cfg := &config.StructuredConfig{
		Server: config.Server{HTTPAddress: ":3000"},
	}

	h, err := NewHandlers(nil, cfg, newTestCounter(), models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_NoAddress verifies that an empty HTTP address is rejected
// with errNoHandlersAreCreated and a nil *Handlers.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nil, &config.StructuredConfig{}, newTestCounter(), models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

// TestNewHandlers_InitBuildsRouter verifies the HTTP handler assembles its
// pipeline without panicking.
func TestNewHandlers_InitBuildsRouter(t *testing.T) {
	cfg := &config.StructuredConfig{
		App:      config.App{Environment: config.EnvironmentDevelopment},
		Server:   config.Server{HTTPAddress: ":3000"},
		Security: config.Security{BodyLimit: 1024},
	}

	h, err := NewHandlers(nil, cfg, newTestCounter(), models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.NotPanics(t, func() { h.HTTP.Init() })
}

// TestNewHandlers_ServesThroughServices drives the assembled pipeline with
// mocked services: a protected admin route and a public read.
func TestNewHandlers_ServesThroughServices(t *testing.T) {
	ctrl := gomock.NewController(t)

	auth := mock.NewMockAuthService(ctrl)
	tours := mock.NewMockTourService(ctrl)
	users := mock.NewMockUserService(ctrl)
	reviews := mock.NewMockReviewService(ctrl)

	admin := models.User{ID: 9, Name: "Admin", Role: models.RoleAdmin}
	auth.EXPECT().Authenticate(gomock.Any(), "admin-jwt").Return(admin, nil)
	users.EXPECT().Get(gomock.Any(), int64(3)).Return(models.User{ID: 3, Name: "Guide", Role: models.RoleGuide}, nil)
	tours.EXPECT().Get(gomock.Any(), int64(1)).Return(models.Tour{ID: 1, Name: "The Forest Hiker", Duration: 7}, nil)

	services := &service.Services{AuthService: auth, TourService: tours, UserService: users, ReviewService: reviews}
	cfg := &config.StructuredConfig{
		App:    config.App{Environment: config.EnvironmentProduction},
		Server: config.Server{HTTPAddress: ":3000"},
		Security: config.Security{
			RateLimitMax:    100,
			RateLimitWindow: time.Hour,
			BodyLimit:       config.DefaultBodyLimit,
		},
	}

	h, err := NewHandlers(services, cfg, newTestCounter(), models.NewAppBuildInfo("", "", ""), logger.Nop())
	require.NoError(t, err)
	router := h.HTTP.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/3", nil)
	req.Header.Set("Authorization", "Bearer admin-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"guide"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tours/1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"durationWeeks":1`)
}
