package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReviewSvc(t *testing.T) (ReviewService, *mock.MockReviewRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockReviewRepository(ctrl)
	return NewReviewService(repo, logger.Nop()), repo
}

func TestReviewService_Create_SetsAuthor(t *testing.T) {
	svc, repo := newTestReviewSvc(t)
	author := models.User{ID: 9, Name: "Ann", Photo: "ann.jpg"}

	repo.EXPECT().Create(gomock.Any(), models.Review{Review: "Great tour", Rating: 5, TourID: 3, UserID: 9}).
		Return(models.Review{ID: 1, Review: "Great tour", Rating: 5, TourID: 3, UserID: 9}, nil)

	review, err := svc.Create(context.Background(), author, models.ReviewRequest{
		Review: " Great tour ",
		Rating: 5,
		Tour:   3,
	})
	require.NoError(t, err)
	require.NotNil(t, review.User)
	assert.Equal(t, models.ReviewAuthor{ID: 9, Name: "Ann", Photo: "ann.jpg"}, *review.User)
}

func TestReviewService_Create_ValidationError(t *testing.T) {
	svc, _ := newTestReviewSvc(t)

	_, err := svc.Create(context.Background(), models.User{ID: 9}, models.ReviewRequest{Rating: 7})
	assert.ErrorIs(t, err, validators.ErrReviewRequired)
	assert.ErrorIs(t, err, validators.ErrReviewRatingInvalid)
	assert.ErrorIs(t, err, validators.ErrReviewTourRequired)
}

func TestReviewService_Create_DuplicateReview(t *testing.T) {
	svc, repo := newTestReviewSvc(t)

	dup := &store.DuplicateValueError{Field: "tour, user", Value: "3, 9"}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.Review{}, dup)

	_, err := svc.Create(context.Background(), models.User{ID: 9}, models.ReviewRequest{Review: "Again", Rating: 4, Tour: 3})
	assert.ErrorIs(t, err, store.ErrDuplicateValue)
}

func TestReviewService_Update(t *testing.T) {
	t.Run("invalid rating", func(t *testing.T) {
		svc, _ := newTestReviewSvc(t)
		_, err := svc.Update(context.Background(), 1, models.ReviewUpdate{Rating: ptr(0.5)})
		assert.ErrorIs(t, err, validators.ErrReviewRatingInvalid)
	})

	t.Run("valid", func(t *testing.T) {
		svc, repo := newTestReviewSvc(t)
		update := models.ReviewUpdate{Rating: ptr(4.0)}
		repo.EXPECT().Update(gomock.Any(), int64(1), update).Return(models.Review{ID: 1, Rating: 4}, nil)

		got, err := svc.Update(context.Background(), 1, update)
		require.NoError(t, err)
		assert.Equal(t, 4.0, got.Rating)
	})
}
