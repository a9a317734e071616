// Package server runs the HTTP server and the background workers.
//
// It handles startup, signal handling and graceful shutdown: on SIGINT,
// SIGTERM or SIGQUIT in-flight requests are given the configured shutdown
// timeout to finish and the workers are stopped.
package server
