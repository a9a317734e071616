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

type reviewService struct {
	reviewRepository store.ReviewRepository
	validator        validators.Validator
	logger           *logger.Logger
}

func NewReviewService(reviewRepository store.ReviewRepository, logger *logger.Logger) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		validator:        validators.NewReviewValidator(),
		logger:           logger,
	}
}

func (s *reviewService) GetAll(ctx context.Context, query models.ListQuery) ([]models.Review, error) {
	return s.reviewRepository.GetAll(ctx, query)
}

func (s *reviewService) Get(ctx context.Context, id int64) (models.Review, error) {
	return s.reviewRepository.GetByID(ctx, id)
}

// Create stores a review written by author.
func (s *reviewService) Create(ctx context.Context, author models.User, req models.ReviewRequest) (models.Review, error) {
	review := models.Review{
		Review: strings.TrimSpace(req.Review),
		Rating: req.Rating,
		TourID: req.Tour,
		UserID: author.ID,
	}

	if err := s.validator.Validate(ctx, review); err != nil {
		return models.Review{}, err
	}

	created, err := s.reviewRepository.Create(ctx, review)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reviewService.Create").
			Int64("tour_id", review.TourID).
			Int64("user_id", review.UserID).
			Msg("review creation failed")
		return models.Review{}, fmt.Errorf("review creation failed: %w", err)
	}

	created.User = &models.ReviewAuthor{ID: author.ID, Name: author.Name, Photo: author.Photo}
	return created, nil
}

func (s *reviewService) Update(ctx context.Context, id int64, update models.ReviewUpdate) (models.Review, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Review{}, err
	}

	return s.reviewRepository.Update(ctx, id, update)
}

func (s *reviewService) Delete(ctx context.Context, id int64) error {
	return s.reviewRepository.Delete(ctx, id)
}
