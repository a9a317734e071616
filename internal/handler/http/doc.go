// Package http implements the REST transport of the tours API.
//
// It assembles the ordered request pipeline (security headers, rate limiting,
// body size limits and input sanitizing), mounts the tour, user and review
// routers and renders every failure through a single error handler.
package http
