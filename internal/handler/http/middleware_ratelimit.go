package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-tours/internal/ratelimit"
	"github.com/go-chi/httprate"
)

const apiPrefix = "/api"

func (h *Handler) newRateLimiter(counter *ratelimit.Counter) *httprate.RateLimiter {
	return httprate.NewRateLimiter(
		h.security.RateLimitMax,
		h.security.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitCounter(counter),
		httprate.WithLimitHandler(h.tooManyRequests),
	)
}

// rateLimit applies the per-IP limit to /api routes only.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	limited := h.limiter.Handler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAPIPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (h *Handler) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.handleError(w, r, NewAppError(h.security.RateLimitMessage, http.StatusTooManyRequests))
}

func isAPIPath(path string) bool {
	return path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/")
}
