package service

import (
	"context"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService signs users up and in, issues tokens and resolves them back to
// users.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) (models.User, error)
}

type TourService interface {
	GetAll(ctx context.Context, query models.ListQuery) ([]models.Tour, error)
	Get(ctx context.Context, id int64) (models.Tour, error)
	Create(ctx context.Context, tour models.Tour) (models.Tour, error)
	Update(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
}

type UserService interface {
	GetAll(ctx context.Context, query models.ListQuery) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	UpdateMe(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type ReviewService interface {
	GetAll(ctx context.Context, query models.ListQuery) ([]models.Review, error)
	Get(ctx context.Context, id int64) (models.Review, error)
	Create(ctx context.Context, author models.User, req models.ReviewRequest) (models.Review, error)
	Update(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error)
	Delete(ctx context.Context, id int64) error
}
