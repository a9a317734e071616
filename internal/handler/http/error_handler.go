package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
)

const genericErrorMessage = "Something went very wrong!"

type errorDetails struct {
	StatusCode    int    `json:"statusCode"`
	Status        string `json:"status"`
	IsOperational bool   `json:"isOperational"`
	Cause         string `json:"cause,omitempty"`
}

// handleError renders err as the JSON error envelope. Development responses
// carry the full error, production responses hide non-operational errors
// behind a generic message.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	appErr := toAppError(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.Err(err).Str("uri", r.RequestURI).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", appErr.StatusCode).Msg("request rejected")
	}

	body := envelope{"status": appErr.Status, "message": appErr.Message}

	switch {
	case h.app.IsDevelopment():
		details := errorDetails{
			StatusCode:    appErr.StatusCode,
			Status:        appErr.Status,
			IsOperational: appErr.IsOperational,
		}
		if appErr.Err != nil {
			details.Cause = appErr.Err.Error()
		}
		body["error"] = details
	case !appErr.IsOperational:
		body = envelope{"status": statusError, "message": genericErrorMessage}
		appErr = &AppError{StatusCode: http.StatusInternalServerError}
	}

	if _, wErr := utils.WriteJSON(w, body, appErr.StatusCode); wErr != nil {
		log.Err(wErr).Msg("writing error response failed")
	}
}

// notFound answers every unmatched path or method.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.handleError(w, r, NewAppError("Can't find "+r.RequestURI+" on this server", http.StatusNotFound))
}
