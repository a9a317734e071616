package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

const (
	loggedOutCookieValue = "loggedout"
	loggedOutCookieTTL   = 10 * time.Second
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Signup(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", user.ID).Msg("user signed up")
	h.sendToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.sendToken(w, r, user, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    loggedOutCookieValue,
		Path:     "/",
		Expires:  time.Now().Add(loggedOutCookieTTL),
		HttpOnly: true,
	})

	h.respond(w, r, http.StatusOK, envelope{"status": statusSuccess})
}

func (h *Handler) updateMyPassword(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req models.UpdatePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	updated, err := h.services.AuthService.UpdatePassword(r.Context(), user.ID, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.sendToken(w, r, updated, http.StatusOK)
}

// sendToken issues a token for user, sets it as the jwt cookie and writes it
// together with the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, statusCode int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token.String(),
		Path:     "/",
		Expires:  time.Now().Add(h.app.CookieDuration),
		HttpOnly: true,
		Secure:   !h.app.IsDevelopment(),
	})

	h.respond(w, r, statusCode, envelope{
		"status": statusSuccess,
		"token":  token.String(),
		"data":   envelope{"user": user},
	})
}
