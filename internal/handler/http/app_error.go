// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// AppError is an error that carries the HTTP response it should produce.
//
// Operational errors are expected failures (bad input, missing resources,
// denied access) whose message is safe to show to clients. Everything else is
// a programming or infrastructure error and is hidden in production.
type AppError struct {
	StatusCode    int
	Status        string
	Message       string
	IsOperational bool
	Err           error
}

// NewAppError creates an operational error answered with statusCode.
func NewAppError(message string, statusCode int) *AppError {
	return &AppError{
		StatusCode:    statusCode,
		Status:        statusFromCode(statusCode),
		Message:       message,
		IsOperational: true,
	}
}

// wrapAppError is NewAppError that keeps err as the cause.
func wrapAppError(err error, message string, statusCode int) *AppError {
	appErr := NewAppError(message, statusCode)
	appErr.Err = err
	return appErr
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func statusFromCode(code int) string {
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return statusFail
	}
	return statusError
}
