package http

import (
	"compress/flate"
	"compress/gzip"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
)

const invalidGzipMessage = "Invalid gzip data"

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	service.ErrMissingCredentials:       {http.StatusBadRequest, "Please provide email and password!"},
	service.ErrIncorrectCredentials:     {http.StatusUnauthorized, "Incorrect email or password"},
	service.ErrWrongCurrentPassword:     {http.StatusUnauthorized, "Your current password is wrong."},
	service.ErrNotLoggedIn:              {http.StatusUnauthorized, "You are not logged in! Please log in to get access."},
	service.ErrTokenIsInvalid:           {http.StatusUnauthorized, "Invalid token. Please log in again!"},
	service.ErrTokenIsExpired:           {http.StatusUnauthorized, "Your token has expired! Please log in again."},
	service.ErrUserNoLongerExists:       {http.StatusUnauthorized, "The user belonging to this token does no longer exist."},
	service.ErrPasswordRecentlyChanged:  {http.StatusUnauthorized, "User recently changed password! Please log in again."},
	service.ErrPermissionDenied:         {http.StatusForbidden, "You do not have permission to perform this action"},
	service.ErrPasswordUpdateNotAllowed: {http.StatusBadRequest, "This route is not for password updates. Please use /updateMyPassword."},
	service.ErrInvalidDataProvided:      {http.StatusBadRequest, "Invalid input data."},

	store.ErrTourNotFound:     {http.StatusNotFound, "No tour found with that ID"},
	store.ErrUserNotFound:     {http.StatusNotFound, "No user found with that ID"},
	store.ErrReviewNotFound:   {http.StatusNotFound, "No review found with that ID"},
	store.ErrInvalidReference: {http.StatusBadRequest, "Invalid input data. Referenced tour or user does not exist."},
	store.ErrInvalidValue:     {http.StatusBadRequest, "Invalid input data."},

	validators.ErrNoFieldsToUpdate: {http.StatusBadRequest, "Invalid input data. At least one field must be provided for update."},

	utils.ErrInvalidJSON: {http.StatusBadRequest, "Invalid JSON was passed"},

	ErrNotAuthenticated: {http.StatusUnauthorized, "You are not logged in! Please log in to get access."},
}

// toAppError classifies any error returned by a handler into the response
// it should produce. Unknown errors become non-operational 500s.
func toAppError(err error) *AppError {
	var (
		appErr       *AppError
		maxBytesErr  *http.MaxBytesError
		invalidErr   *store.InvalidValueError
		duplicateErr *store.DuplicateValueError
		checkErr     *store.ConstraintError
		validErr     *validators.ValidationError
		corruptErr   flate.CorruptInputError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &maxBytesErr):
		return wrapAppError(err, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.As(err, &invalidErr):
		return wrapAppError(err, fmt.Sprintf("Invalid %s: %s.", invalidErr.Field, invalidErr.Value), http.StatusBadRequest)
	case errors.As(err, &checkErr):
		return wrapAppError(err, "Invalid input data. "+checkErr.Error()+".", http.StatusBadRequest)
	case errors.As(err, &duplicateErr):
		return wrapAppError(err, fmt.Sprintf("Duplicate field value: %s. Please use another value!", duplicateErr.Value), http.StatusBadRequest)
	case errors.As(err, &validErr):
		return wrapAppError(err, "Invalid input data. "+validErr.Error(), http.StatusBadRequest)
	case errors.As(err, &corruptErr), errors.Is(err, gzip.ErrChecksum), errors.Is(err, gzip.ErrHeader):
		return wrapAppError(err, invalidGzipMessage, http.StatusBadRequest)
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return wrapAppError(err, resp.message, resp.status)
		}
	}

	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Status:     statusError,
		Message:    err.Error(),
		Err:        err,
	}
}
