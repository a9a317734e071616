package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

// statsMinRating is the lowest ratings average included in tour statistics.
const statsMinRating = 4.5

type tourService struct {
	tourRepository store.TourRepository
	validator      validators.Validator
	logger         *logger.Logger
}

func NewTourService(tourRepository store.TourRepository, logger *logger.Logger) TourService {
	return &tourService{
		tourRepository: tourRepository,
		validator:      validators.NewTourValidator(),
		logger:         logger,
	}
}

func (s *tourService) GetAll(ctx context.Context, query models.ListQuery) ([]models.Tour, error) {
	return s.tourRepository.GetAll(ctx, query)
}

func (s *tourService) Get(ctx context.Context, id int64) (models.Tour, error) {
	return s.tourRepository.GetByID(ctx, id)
}

// Create fills defaults, validates and stores a new tour.
func (s *tourService) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	tour.Name = strings.TrimSpace(tour.Name)
	tour.Summary = strings.TrimSpace(tour.Summary)
	tour.Description = strings.TrimSpace(tour.Description)
	if tour.RatingsAverage == 0 {
		tour.RatingsAverage = models.DefaultRatingsAverage
	}
	tour.RatingsAverage = models.RoundRating(tour.RatingsAverage)

	if err := s.validator.Validate(ctx, tour); err != nil {
		return models.Tour{}, err
	}

	created, err := s.tourRepository.Create(ctx, tour)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tourService.Create").Str("name", tour.Name).Msg("tour creation failed")
		return models.Tour{}, fmt.Errorf("tour creation failed: %w", err)
	}

	return created, nil
}

// Update validates the provided fields against the current tour before
// storing them.
func (s *tourService) Update(ctx context.Context, id int64, update models.TourUpdate) (models.Tour, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	current, err := s.tourRepository.GetByID(ctx, id)
	if err != nil {
		return models.Tour{}, err
	}

	if err := s.validator.Validate(ctx, validators.TourUpdateInput{Current: current, Update: update}); err != nil {
		return models.Tour{}, err
	}

	return s.tourRepository.Update(ctx, id, update)
}

func (s *tourService) Delete(ctx context.Context, id int64) error {
	return s.tourRepository.Delete(ctx, id)
}

// Stats aggregates the well rated tours by difficulty.
func (s *tourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	stats, err := s.tourRepository.Stats(ctx, statsMinRating)
	if err != nil {
		return nil, err
	}

	for i := range stats {
		stats[i].AvgRating = models.RoundRating(stats[i].AvgRating)
	}

	return stats, nil
}

func (s *tourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidDataProvided, year)
	}

	return s.tourRepository.MonthlyPlan(ctx, year)
}
