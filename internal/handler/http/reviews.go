package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

// nestedTourID returns the tour id of /tours/{tourId}/reviews requests, or
// zero when the review router is mounted on its own.
func nestedTourID(r *http.Request) (int64, error) {
	if chi.URLParam(r, "tourId") == "" {
		return 0, nil
	}
	return idParam(r, "tourId")
}

func (h *Handler) getAllReviews(w http.ResponseWriter, r *http.Request) {
	tourID, err := nestedTourID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	query := models.NewListQuery(r.URL.Query())
	if tourID != 0 {
		query = query.WithFilter("tour", strconv.FormatInt(tourID, 10))
	}

	reviews, err := h.services.ReviewService.GetAll(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items, err := projectFields(reviews, query.Fields)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondList(w, r, "reviews", items)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tourID, err := nestedTourID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req models.ReviewRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if tourID != 0 {
		req.Tour = tourID
	}

	review, err := h.services.ReviewService.Create(r.Context(), user, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusCreated, envelope{"review": review})
}

func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reviewId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"review": review})
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reviewId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var update models.ReviewUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		h.handleError(w, r, err)
		return
	}

	review, err := h.services.ReviewService.Update(r.Context(), id, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"review": review})
}

func (h *Handler) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "reviewId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.services.ReviewService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondNoContent(w)
}
