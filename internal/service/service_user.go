package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (s *userService) GetAll(ctx context.Context, query models.ListQuery) ([]models.User, error) {
	return s.userRepository.GetAll(ctx, query)
}

func (s *userService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.userRepository.FindByID(ctx, id)
}

// UpdateMe lets a user change their own name, email and photo. A role in
// update is dropped.
func (s *userService) UpdateMe(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	update.Role = nil
	return s.Update(ctx, id, update)
}

func (s *userService) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	if err := s.validator.Validate(ctx, update); err != nil {
		return models.User{}, err
	}

	return s.userRepository.Update(ctx, id, update)
}

func (s *userService) Deactivate(ctx context.Context, id int64) error {
	logger.FromContext(ctx).Info().Str("func", "userService.Deactivate").Int64("user_id", id).Msg("deactivating user")
	return s.userRepository.Deactivate(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepository.Delete(ctx, id)
}
