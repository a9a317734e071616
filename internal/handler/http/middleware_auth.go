package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

const tokenCookieName = "jwt"

// protect resolves the bearer token or the jwt cookie to a user and stores it
// in the request context. Requests without a valid token are rejected with 401.
func (h *Handler) protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := h.services.AuthService.Authenticate(ctx, tokenFromRequest(r))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// restrictTo lets through users having one of roles. It must run after protect.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				h.handleError(w, r, ErrNotAuthenticated)
				return
			}

			if !user.HasRole(roles...) {
				h.handleError(w, r, service.ErrPermissionDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest prefers the Authorization header over the cookie.
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer") {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return ""
		}
		return token
	}

	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	return user, nil
}
