package store

import "github.com/MKhiriev/go-tours/internal/logger"

// Storages groups the repositories the services depend on.
type Storages struct {
	TourRepository   TourRepository
	UserRepository   UserRepository
	ReviewRepository ReviewRepository
}

// NewStorages builds PostgreSQL-backed repositories sharing db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		TourRepository:   NewTourRepository(db, log),
		UserRepository:   NewUserRepository(db, log),
		ReviewRepository: NewReviewRepository(db, log),
	}
}
