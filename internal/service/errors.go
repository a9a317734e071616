package service

import "errors"

// Authentication and authorization errors.
var (
	ErrMissingCredentials       = errors.New("email and password are required")
	ErrIncorrectCredentials     = errors.New("incorrect email or password")
	ErrWrongCurrentPassword     = errors.New("current password is wrong")
	ErrNotLoggedIn              = errors.New("not logged in")
	ErrTokenIsInvalid           = errors.New("token is invalid")
	ErrTokenIsExpired           = errors.New("token is expired")
	ErrTokenCreationFailed      = errors.New("token creation failed")
	ErrUserNoLongerExists       = errors.New("user belonging to the token no longer exists")
	ErrPasswordRecentlyChanged  = errors.New("password changed after the token was issued")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrPasswordUpdateNotAllowed = errors.New("password can not be updated on this route")
)

// Input errors.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
)
