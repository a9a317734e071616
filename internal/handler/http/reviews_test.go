package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllReviews(t *testing.T) {
	var got models.ListQuery
	reviews := &fakeReviewService{
		getAllFn: func(_ context.Context, query models.ListQuery) ([]models.Review, error) {
			got = query
			return []models.Review{{ID: 1, Review: "Great", Rating: 5, TourID: 3}}, nil
		},
	}
	router := newTestHandler(&service.Services{ReviewService: reviews}).Init()

	t.Run("requires login", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/reviews", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("all reviews", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/reviews", "", "guide-token")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["results"])
		assert.Empty(t, got.Filters)
	})

	t.Run("nested under tour", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/tours/3/reviews", "", "user-token")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []models.Filter{{Field: "tour", Operator: models.OpEq, Values: []string{"3"}}}, got.Filters)
	})

	t.Run("nested with malformed tour id", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/v1/tours/x/reviews", "", "user-token")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateReview(t *testing.T) {
	var (
		gotAuthor models.User
		gotReq    models.ReviewRequest
	)
	reviews := &fakeReviewService{
		createFn: func(_ context.Context, author models.User, req models.ReviewRequest) (models.Review, error) {
			gotAuthor, gotReq = author, req
			if req.Tour == 9 {
				return models.Review{}, &store.DuplicateValueError{Field: "tour, user", Value: "9, 1"}
			}
			return models.Review{ID: 11, Review: req.Review, Rating: req.Rating, TourID: req.Tour, UserID: author.ID}, nil
		},
	}
	router := newTestHandler(&service.Services{ReviewService: reviews}).Init()

	tests := []struct {
		name        string
		target      string
		body        string
		token       string
		wantStatus  int
		wantTour    int64
		wantMessage string
	}{
		{name: "top level", target: "/api/v1/reviews", body: `{"review":"Lovely","rating":4,"tour":2}`, token: "user-token", wantStatus: http.StatusCreated, wantTour: 2},
		{name: "nested takes tour from path", target: "/api/v1/tours/5/reviews", body: `{"review":"Lovely","rating":4,"tour":2}`, token: "user-token", wantStatus: http.StatusCreated, wantTour: 5},
		{name: "admin can not review", target: "/api/v1/reviews", body: `{"review":"x","rating":4,"tour":2}`, token: "admin-token", wantStatus: http.StatusForbidden},
		{name: "duplicate review", target: "/api/v1/tours/9/reviews", body: `{"review":"Again","rating":4}`, token: "user-token", wantStatus: http.StatusBadRequest, wantMessage: "Duplicate field value: 9, 1. Please use another value!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, tt.target, tt.body, tt.token)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decodeBody(t, rec)["message"])
			}
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, tt.wantTour, gotReq.Tour)
				assert.Equal(t, int64(1), gotAuthor.ID)

				review := decodeBody(t, rec)["data"].(map[string]any)["review"].(map[string]any)
				assert.Equal(t, float64(tt.wantTour), review["tour"])
			}
		})
	}
}

func TestReviewByID(t *testing.T) {
	reviews := &fakeReviewService{
		getFn: func(_ context.Context, id int64) (models.Review, error) {
			if id != 1 {
				return models.Review{}, store.ErrReviewNotFound
			}
			return models.Review{ID: 1, Review: "Great", Rating: 5}, nil
		},
		updateFn: func(_ context.Context, id int64, update models.ReviewUpdate) (models.Review, error) {
			return models.Review{ID: id, Review: "Great", Rating: *update.Rating}, nil
		},
		deleteFn: func(_ context.Context, id int64) error {
			if id != 1 {
				return store.ErrReviewNotFound
			}
			return nil
		},
	}
	router := newTestHandler(&service.Services{ReviewService: reviews}).Init()

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		token      string
		wantStatus int
	}{
		{name: "get", method: http.MethodGet, target: "/api/v1/reviews/1", token: "guide-token", wantStatus: http.StatusOK},
		{name: "get missing", method: http.MethodGet, target: "/api/v1/reviews/2", token: "guide-token", wantStatus: http.StatusNotFound},
		{name: "update as user", method: http.MethodPatch, target: "/api/v1/reviews/1", body: `{"rating":3}`, token: "user-token", wantStatus: http.StatusOK},
		{name: "update as guide", method: http.MethodPatch, target: "/api/v1/reviews/1", body: `{"rating":3}`, token: "guide-token", wantStatus: http.StatusForbidden},
		{name: "delete as admin", method: http.MethodDelete, target: "/api/v1/reviews/1", token: "admin-token", wantStatus: http.StatusNoContent},
		{name: "delete missing", method: http.MethodDelete, target: "/api/v1/reviews/7", token: "admin-token", wantStatus: http.StatusNotFound},
		{name: "delete as lead guide", method: http.MethodDelete, target: "/api/v1/reviews/1", token: "lead-token", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.target, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
