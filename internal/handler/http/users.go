package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// userUpdateRequest is a user update that may wrongly carry password fields.
type userUpdateRequest struct {
	models.UserUpdate

	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func decodeUserUpdate(r *http.Request) (models.UserUpdate, error) {
	var req userUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		return models.UserUpdate{}, err
	}

	if req.Password != "" || req.PasswordConfirm != "" {
		return models.UserUpdate{}, service.ErrPasswordUpdateNotAllowed
	}

	return req.UserUpdate, nil
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	found, err := h.services.UserService.Get(r.Context(), user.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"user": found})
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	update, err := decodeUserUpdate(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	updated, err := h.services.UserService.UpdateMe(r.Context(), user.ID, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"user": updated})
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.services.UserService.Deactivate(r.Context(), user.ID); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondNoContent(w)
}

func (h *Handler) getAllUsers(w http.ResponseWriter, r *http.Request) {
	query := models.NewListQuery(r.URL.Query())

	users, err := h.services.UserService.GetAll(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items, err := projectFields(users, query.Fields)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondList(w, r, "users", items)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	h.handleError(w, r, wrapAppError(ErrRouteNotDefined,
		"This route is not defined! Please use /signup instead", http.StatusInternalServerError))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.UserService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"user": user})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	update, err := decodeUserUpdate(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.services.UserService.Update(r.Context(), id, update)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondData(w, r, http.StatusOK, envelope{"user": user})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.respondNoContent(w)
}
