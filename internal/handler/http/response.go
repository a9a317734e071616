package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
)

// envelope is the top-level JSON object of every response.
type envelope map[string]any

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, statusCode int, body envelope) {
	if _, err := utils.WriteJSON(w, body, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing response failed")
	}
}

// respondData writes {"status": "success", "data": data}.
func (h *Handler) respondData(w http.ResponseWriter, r *http.Request, statusCode int, data envelope) {
	h.respond(w, r, statusCode, envelope{"status": statusSuccess, "data": data})
}

// respondList writes {"status": "success", "results": n, "data": {name: items}}.
func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, name string, items []map[string]any) {
	h.respond(w, r, http.StatusOK, envelope{
		"status":  statusSuccess,
		"results": len(items),
		"data":    envelope{name: items},
	})
}

func (h *Handler) respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
