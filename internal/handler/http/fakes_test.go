package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/ratelimit"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/require"
)

// ---- Fake: AuthService ----

type fakeAuthService struct {
	signupFn         func(ctx context.Context, req models.SignupRequest) (models.User, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	authenticateFn   func(ctx context.Context, tokenString string) (models.User, error)
	updatePasswordFn func(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return f.signupFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn == nil {
		return models.Token{SignedString: "signed-token", UserID: user.ID}, nil
	}
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if f.authenticateFn == nil {
		return models.User{}, service.ErrNotLoggedIn
	}
	return f.authenticateFn(ctx, tokenString)
}

func (f *fakeAuthService) UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error) {
	return f.updatePasswordFn(ctx, userID, req)
}

// ---- Fake: TourService ----

type fakeTourService struct {
	getAllFn      func(ctx context.Context, query models.ListQuery) ([]models.Tour, error)
	getFn         func(ctx context.Context, id int64) (models.Tour, error)
	createFn      func(ctx context.Context, tour models.Tour) (models.Tour, error)
	updateFn      func(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error)
	deleteFn      func(ctx context.Context, id int64) error
	statsFn       func(ctx context.Context) ([]models.TourStats, error)
	monthlyPlanFn func(ctx context.Context, year int) ([]models.MonthlyPlan, error)
}

func (f *fakeTourService) GetAll(ctx context.Context, query models.ListQuery) ([]models.Tour, error) {
	return f.getAllFn(ctx, query)
}

func (f *fakeTourService) Get(ctx context.Context, id int64) (models.Tour, error) {
	return f.getFn(ctx, id)
}

func (f *fakeTourService) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	return f.createFn(ctx, tour)
}

func (f *fakeTourService) Update(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error) {
	return f.updateFn(ctx, id, update)
}

func (f *fakeTourService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return f.statsFn(ctx)
}

func (f *fakeTourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	return f.monthlyPlanFn(ctx, year)
}

// ---- Fake: UserService ----

type fakeUserService struct {
	getAllFn     func(ctx context.Context, query models.ListQuery) ([]models.User, error)
	getFn        func(ctx context.Context, id int64) (models.User, error)
	updateMeFn   func(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	updateFn     func(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	deactivateFn func(ctx context.Context, id int64) error
	deleteFn     func(ctx context.Context, id int64) error
}

func (f *fakeUserService) GetAll(ctx context.Context, query models.ListQuery) ([]models.User, error) {
	return f.getAllFn(ctx, query)
}

func (f *fakeUserService) Get(ctx context.Context, id int64) (models.User, error) {
	return f.getFn(ctx, id)
}

func (f *fakeUserService) UpdateMe(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	return f.updateMeFn(ctx, id, update)
}

func (f *fakeUserService) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	return f.updateFn(ctx, id, update)
}

func (f *fakeUserService) Deactivate(ctx context.Context, id int64) error {
	return f.deactivateFn(ctx, id)
}

func (f *fakeUserService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

// ---- Fake: ReviewService ----

type fakeReviewService struct {
	getAllFn func(ctx context.Context, query models.ListQuery) ([]models.Review, error)
	getFn    func(ctx context.Context, id int64) (models.Review, error)
	createFn func(ctx context.Context, author models.User, req models.ReviewRequest) (models.Review, error)
	updateFn func(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (f *fakeReviewService) GetAll(ctx context.Context, query models.ListQuery) ([]models.Review, error) {
	return f.getAllFn(ctx, query)
}

func (f *fakeReviewService) Get(ctx context.Context, id int64) (models.Review, error) {
	return f.getFn(ctx, id)
}

func (f *fakeReviewService) Create(ctx context.Context, author models.User, req models.ReviewRequest) (models.Review, error) {
	return f.createFn(ctx, author, req)
}

func (f *fakeReviewService) Update(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error) {
	return f.updateFn(ctx, id, update)
}

func (f *fakeReviewService) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

// ---- Helpers ----

// testUsers maps bearer tokens accepted by authAs to users.
var testUsers = map[string]models.User{
	"user-token":  {ID: 1, Name: "Regular User", Role: models.RoleUser},
	"guide-token": {ID: 2, Name: "Guide", Role: models.RoleGuide},
	"lead-token":  {ID: 3, Name: "Lead Guide", Role: models.RoleLeadGuide},
	"admin-token": {ID: 4, Name: "Admin", Role: models.RoleAdmin},
}

// authByToken resolves the tokens of testUsers.
func authByToken(_ context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, service.ErrNotLoggedIn
	}
	user, ok := testUsers[token]
	if !ok {
		return models.User{}, service.ErrTokenIsInvalid
	}
	return user, nil
}

var testBuildInfo = models.NewAppBuildInfo("v1.4.0", "2026-03-01", "4f2a9c1")

func testConfig(environment string) *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Environment:    environment,
			CookieDuration: time.Hour,
		},
		Server: config.Server{HTTPAddress: ":0"},
		Security: config.Security{
			RateLimitMax:       100,
			RateLimitWindow:    time.Hour,
			RateLimitMessage:   config.DefaultRateLimitMessage,
			BodyLimit:          config.DefaultBodyLimit,
			ParameterWhitelist: config.DefaultParameterWhitelist,
		},
	}
}

// newTestHandler builds a production-mode Handler around the given services.
// Missing services are replaced by empty fakes.
func newTestHandler(services *service.Services) *Handler {
	return newTestHandlerWithConfig(services, testConfig(config.EnvironmentProduction))
}

func newTestHandlerWithConfig(services *service.Services, cfg *config.StructuredConfig) *Handler {
	if services == nil {
		services = &service.Services{}
	}
	if services.AuthService == nil {
		services.AuthService = &fakeAuthService{authenticateFn: authByToken}
	}
	if services.TourService == nil {
		services.TourService = &fakeTourService{}
	}
	if services.UserService == nil {
		services.UserService = &fakeUserService{}
	}
	if services.ReviewService == nil {
		services.ReviewService = &fakeReviewService{}
	}

	counter := ratelimit.NewCounter(time.Minute, logger.Nop())
	return NewHandler(services, cfg, counter, testBuildInfo, logger.Nop())
}

// do sends a request through the full pipeline. token, when set, is sent as
// a bearer token.
func do(t *testing.T, h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := newRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(h, req)
}

// decodeBody unmarshals a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func newRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
