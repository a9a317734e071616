package service

import (
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
)

type Services struct {
	AuthService   AuthService
	TourService   TourService
	UserService   UserService
	ReviewService ReviewService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.App, logger),
		TourService:   NewTourService(storages.TourRepository, logger),
		UserService:   NewUserService(storages.UserRepository, logger),
		ReviewService: NewReviewService(storages.ReviewRepository, logger),
	}
}
