package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/go-chi/chi/v5"
)

// idParam parses a positive integer path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, &store.InvalidValueError{Field: "id", Value: raw}
	}
	return id, nil
}
