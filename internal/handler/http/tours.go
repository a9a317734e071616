package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

// aliasTopTours rewrites the query to list the five best rated cheap tours.
func aliasTopTours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("limit", "5")
		q.Set("sort", "-ratingsAverage,price")
		q.Set("fields", "name,price,ratingsAverage,summary,difficulty")
		r.URL.RawQuery = q.Encode()

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) getAllTours(w http.ResponseWriter, r *http.Request) {
	query := models.NewListQuery(r.URL.Query())

	tours, err := h.services.TourService.GetAll(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items, err := projectFields(tours, query.Fields)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondList(w, r, "tours", items)
}

func (h *Handler) getTour(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tourId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"tour": tour})
}

func (h *Handler) createTour(w http.ResponseWriter, r *http.Request) {
	var tour models.Tour
	if err := utils.DecodeJSON(r, &tour); err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.services.TourService.Create(r.Context(), tour)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("tour_id", created.ID).Msg("tour created")
	h.respondData(w, r, http.StatusCreated, envelope{"tour": created})
}

func (h *Handler) updateTour(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tourId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var update models.TourUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		h.handleError(w, r, err)
		return
	}

	tour, err := h.services.TourService.Update(r.Context(), id, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"tour": tour})
}

func (h *Handler) deleteTour(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "tourId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.services.TourService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondNoContent(w)
}

func (h *Handler) getTourStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.services.TourService.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"stats": stats})
}

func (h *Handler) getMonthlyPlan(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.handleError(w, r, &store.InvalidValueError{Field: "year", Value: raw})
		return
	}

	plan, err := h.services.TourService.MonthlyPlan(r.Context(), year)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"plan": plan})
}
