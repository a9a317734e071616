package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-tours/models"
)

const (
	FieldReview = "review"
	FieldRating = "rating"
	FieldTour   = "tour"
	FieldUser   = "user"
)

type ReviewValidator struct{}

func NewReviewValidator() Validator {
	return &ReviewValidator{}
}

func (v *ReviewValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Review:
		return v.validateReview(ctx, value, fields...)
	case *models.Review:
		return v.validateReview(ctx, *value, fields...)

	case models.ReviewUpdate:
		return v.validateReviewUpdate(ctx, value)
	case *models.ReviewUpdate:
		return v.validateReviewUpdate(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *ReviewValidator) validateReview(_ context.Context, r models.Review, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldReview, FieldRating, FieldTour, FieldUser}
	}

	var p problems
	for _, f := range fields {
		switch f {
		case FieldReview:
			if strings.TrimSpace(r.Review) == "" {
				p.add(ErrReviewRequired)
			}
		case FieldRating:
			if r.Rating < 1 || r.Rating > 5 {
				p.add(ErrReviewRatingInvalid)
			}
		case FieldTour:
			if r.TourID <= 0 {
				p.add(ErrReviewTourRequired)
			}
		case FieldUser:
			if r.UserID <= 0 {
				p.add(ErrReviewUserRequired)
			}
		default:
			return ErrUnknownField
		}
	}

	return p.err()
}

func (v *ReviewValidator) validateReviewUpdate(ctx context.Context, u models.ReviewUpdate) error {
	if u.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	var r models.Review
	fields := make([]string, 0, 2)
	if u.Review != nil {
		r.Review = *u.Review
		fields = append(fields, FieldReview)
	}
	if u.Rating != nil {
		r.Rating = *u.Rating
		fields = append(fields, FieldRating)
	}
	return v.validateReview(ctx, r, fields...)
}
