package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewValidator_Review(t *testing.T) {
	v := NewReviewValidator()
	ctx := context.Background()

	valid := models.Review{Review: "Amazing!", Rating: 5, TourID: 1, UserID: 2}
	require.NoError(t, v.Validate(ctx, valid))
	require.NoError(t, v.Validate(ctx, &valid))

	err := v.Validate(ctx, models.Review{Rating: 6})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReviewRequired)
	assert.ErrorIs(t, err, ErrReviewRatingInvalid)
	assert.ErrorIs(t, err, ErrReviewTourRequired)
	assert.ErrorIs(t, err, ErrReviewUserRequired)
}

func TestReviewValidator_Update(t *testing.T) {
	v := NewReviewValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ReviewUpdate{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.ReviewUpdate{Rating: ptr(3.0)}))
	assert.ErrorIs(t, v.Validate(ctx, models.ReviewUpdate{Rating: ptr(0.0)}), ErrReviewRatingInvalid)
	assert.ErrorIs(t, v.Validate(ctx, &models.ReviewUpdate{Review: ptr(" ")}), ErrReviewRequired)
}

func TestReviewValidator_UnknownField(t *testing.T) {
	err := NewReviewValidator().Validate(context.Background(), models.Review{}, "stars")
	assert.ErrorIs(t, err, ErrUnknownField)
}
