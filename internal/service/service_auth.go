package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	validator validators.Validator

	// passwordCost is the bcrypt work factor used for new password hashes.
	passwordCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now returns the current time.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		passwordCost:   utils.DefaultPasswordCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup validates req and creates a user with the default role and photo.
//
// Returns the persisted user or:
//   - a *validators.ValidationError listing every violated rule;
//   - a *store.DuplicateValueError when the email is taken.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.passwordCost)
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Msg("password hashing failed")
		return models.User{}, err
	}

	photo := req.Photo
	if photo == "" {
		photo = models.DefaultPhoto
	}

	user, err := a.userRepository.Create(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Photo:    photo,
		Role:     models.RoleUser,
		Password: hash,
	})
	if err != nil {
		log.Err(err).Str("func", "authService.Signup").Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return user, nil
}

// Login checks the credentials in req.
//
// Returns the authenticated user or:
//   - ErrMissingCredentials if email or password is empty;
//   - ErrIncorrectCredentials if no active user has the email or the
//     password does not match.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.User{}, ErrMissingCredentials
	}

	user, err := a.userRepository.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Warn().Str("func", "authService.Login").Str("email", email).Msg("login for unknown email")
		return models.User{}, ErrIncorrectCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.Password, req.Password)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		log.Warn().Str("func", "authService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrIncorrectCredentials
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate resolves a raw JWT to the user it was issued for.
//
// Returns ErrNotLoggedIn for an empty token, ErrTokenIsExpired or
// ErrTokenIsInvalid when the token does not verify, ErrUserNoLongerExists when
// the user was deleted or deactivated and ErrPasswordRecentlyChanged when the
// password changed after the token was issued.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.User{}, ErrNotLoggedIn
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.User{}, ErrTokenIsExpired
	}
	if err != nil {
		log.Debug().Err(err).Str("func", "authService.Authenticate").Msg("token rejected")
		return models.User{}, ErrTokenIsInvalid
	}

	user, err := a.userRepository.FindByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrUserNoLongerExists
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	if user.ChangedPasswordAfter(token.IssuedAtTime) {
		return models.User{}, ErrPasswordRecentlyChanged
	}

	return user, nil
}

// UpdatePassword replaces the password of userID after checking the current
// one. The change time is recorded one second in the past, before the iat of
// the token issued for the new password.
func (a *authService) UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.Password, req.PasswordCurrent)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrWrongCurrentPassword
	}

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.passwordCost)
	if err != nil {
		return models.User{}, err
	}

	changedAt := a.now().Add(-time.Second)
	if err := a.userRepository.UpdatePassword(ctx, userID, hash, changedAt); err != nil {
		log.Err(err).Str("func", "authService.UpdatePassword").Int64("user_id", userID).Msg("password update failed")
		return models.User{}, fmt.Errorf("password update failed: %w", err)
	}

	user.Password = hash
	user.PasswordChangedAt = &changedAt

	return user, nil
}
