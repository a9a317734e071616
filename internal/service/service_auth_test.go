package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "go-tours-test",
	TokenDuration: time.Hour,
}

func newTestAuthSvc(t *testing.T) (*authService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(repo, testAppConfig, logger.Nop()).(*authService)
	svc.passwordCost = bcrypt.MinCost

	return svc, repo
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "Ann Smith", u.Name)
			assert.Equal(t, "ann@example.com", u.Email)
			assert.Equal(t, models.RoleUser, u.Role)
			assert.Equal(t, models.DefaultPhoto, u.Photo)
			assert.NotEqual(t, "pass1234", u.Password)

			ok, err := utils.CheckPassword(u.Password, "pass1234")
			require.NoError(t, err)
			assert.True(t, ok)

			u.ID = 1
			u.Active = true
			return u, nil
		},
	)

	user, err := svc.Signup(ctx, models.SignupRequest{
		Name:            " Ann Smith ",
		Email:           "Ann@Example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestAuthService_Signup_ValidationError(t *testing.T) {
	svc, _ := newTestAuthSvc(t)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "Ann",
		Email:           "not-an-email",
		Password:        "short",
		PasswordConfirm: "other",
	})

	var vErr *validators.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, validators.ErrUserEmailInvalid)
	assert.ErrorIs(t, err, validators.ErrUserPasswordTooShort)
	assert.ErrorIs(t, err, validators.ErrUserPasswordsNotSame)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, repo := newTestAuthSvc(t)

	dup := &store.DuplicateValueError{Field: "email", Value: "ann@example.com"}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.User{}, dup)

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "Ann",
		Email:           "ann@example.com",
		Password:        "pass1234",
		PasswordConfirm: "pass1234",
	})
	assert.ErrorIs(t, err, store.ErrDuplicateValue)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	hash := mustHash(t, "pass1234")

	tests := []struct {
		name      string
		req       models.LoginRequest
		setupMock func(repo *mock.MockUserRepository)
		wantErr   error
	}{
		{
			name: "success",
			req:  models.LoginRequest{Email: "ANN@example.com", Password: "pass1234"},
			setupMock: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), "ann@example.com").
					Return(models.User{ID: 1, Email: "ann@example.com", Password: hash}, nil)
			},
		},
		{
			name:      "missing password",
			req:       models.LoginRequest{Email: "ann@example.com"},
			setupMock: func(*mock.MockUserRepository) {},
			wantErr:   ErrMissingCredentials,
		},
		{
			name: "unknown email",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "pass1234"},
			setupMock: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").
					Return(models.User{}, store.ErrUserNotFound)
			},
			wantErr: ErrIncorrectCredentials,
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Email: "ann@example.com", Password: "wrong-pass"},
			setupMock: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindByEmail(gomock.Any(), "ann@example.com").
					Return(models.User{ID: 1, Password: hash}, nil)
			},
			wantErr: ErrIncorrectCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthSvc(t)
			tt.setupMock(repo)

			user, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), user.ID)
		})
	}
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateTokenAndAuthenticate(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{ID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	repo.EXPECT().FindByID(ctx, int64(42)).Return(models.User{ID: 42, Name: "Ann"}, nil)

	user, err := svc.Authenticate(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
}

func TestAuthService_Authenticate_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t)
		_, err := svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t)
		_, err := svc.Authenticate(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrTokenIsInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t)
		token, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, 42, -time.Minute, testAppConfig.TokenSignKey)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token.String())
		assert.ErrorIs(t, err, ErrTokenIsExpired)
	})

	t.Run("user gone", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t)
		token, err := svc.CreateToken(ctx, models.User{ID: 42})
		require.NoError(t, err)

		repo.EXPECT().FindByID(ctx, int64(42)).Return(models.User{}, store.ErrUserNotFound)

		_, err = svc.Authenticate(ctx, token.String())
		assert.ErrorIs(t, err, ErrUserNoLongerExists)
	})

	t.Run("password changed after issue", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t)
		token, err := svc.CreateToken(ctx, models.User{ID: 42})
		require.NoError(t, err)

		changed := time.Now().Add(time.Hour)
		repo.EXPECT().FindByID(ctx, int64(42)).Return(models.User{ID: 42, PasswordChangedAt: &changed}, nil)

		_, err = svc.Authenticate(ctx, token.String())
		assert.ErrorIs(t, err, ErrPasswordRecentlyChanged)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t)
		token, err := svc.CreateToken(ctx, models.User{ID: 42})
		require.NoError(t, err)

		repo.EXPECT().FindByID(ctx, int64(42)).Return(models.User{}, errors.New("db down"))

		_, err = svc.Authenticate(ctx, token.String())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUserNoLongerExists)
	})
}

// ── UpdatePassword ───────────────────────────────────────────────────────────

func TestAuthService_UpdatePassword_Success(t *testing.T) {
	svc, repo := newTestAuthSvc(t)
	ctx := context.Background()

	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.EXPECT().FindByID(ctx, int64(7)).Return(models.User{ID: 7, Password: mustHash(t, "old-pass1")}, nil)
	repo.EXPECT().UpdatePassword(ctx, int64(7), gomock.Any(), fixed.Add(-time.Second)).Return(nil)

	user, err := svc.UpdatePassword(ctx, 7, models.UpdatePasswordRequest{
		PasswordCurrent: "old-pass1",
		Password:        "new-pass1",
		PasswordConfirm: "new-pass1",
	})
	require.NoError(t, err)
	require.NotNil(t, user.PasswordChangedAt)
	assert.Equal(t, fixed.Add(-time.Second), *user.PasswordChangedAt)

	ok, err := utils.CheckPassword(user.Password, "new-pass1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_UpdatePassword_WrongCurrent(t *testing.T) {
	svc, repo := newTestAuthSvc(t)

	repo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, Password: mustHash(t, "old-pass1")}, nil)

	_, err := svc.UpdatePassword(context.Background(), 7, models.UpdatePasswordRequest{
		PasswordCurrent: "guess",
		Password:        "new-pass1",
		PasswordConfirm: "new-pass1",
	})
	assert.ErrorIs(t, err, ErrWrongCurrentPassword)
}

func TestAuthService_UpdatePassword_ConfirmMismatch(t *testing.T) {
	svc, repo := newTestAuthSvc(t)

	repo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(models.User{ID: 7, Password: mustHash(t, "old-pass1")}, nil)

	_, err := svc.UpdatePassword(context.Background(), 7, models.UpdatePasswordRequest{
		PasswordCurrent: "old-pass1",
		Password:        "new-pass1",
		PasswordConfirm: "new-pass2",
	})
	assert.ErrorIs(t, err, validators.ErrUserPasswordsNotSame)
}
