package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// TourRepository persists tours. Secret tours are invisible to every method
// except Create.
type TourRepository interface {
	GetAll(ctx context.Context, query models.ListQuery) ([]models.Tour, error)
	GetByID(ctx context.Context, id int64) (models.Tour, error)
	Create(ctx context.Context, tour models.Tour) (models.Tour, error)
	Update(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, minRating float64) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
}

// UserRepository persists user accounts. Inactive users are invisible to
// every lookup.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	GetAll(ctx context.Context, query models.ListQuery) ([]models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string, changedAt time.Time) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository persists reviews. Every write recalculates the rating
// summary of the reviewed tour in the same transaction.
type ReviewRepository interface {
	GetAll(ctx context.Context, query models.ListQuery) ([]models.Review, error)
	GetByID(ctx context.Context, id int64) (models.Review, error)
	Create(ctx context.Context, review models.Review) (models.Review, error)
	Update(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error)
	Delete(ctx context.Context, id int64) error
}
