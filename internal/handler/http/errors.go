// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the HTTP layer itself. Callers can match against
// them with [errors.Is].
var (
	// ErrRouteNotDefined answers routes that exist only to point clients
	// somewhere else.
	ErrRouteNotDefined = errors.New("route is not defined")

	// ErrNotAuthenticated is returned when a handler that requires a user
	// finds none in the request context.
	ErrNotAuthenticated = errors.New("no authenticated user in context")
)
