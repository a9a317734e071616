package http

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/MKhiriev/go-tours/models"
)

// preventParameterPollution keeps only the last value of a repeated query
// key unless the field is whitelisted.
func (h *Handler) preventParameterPollution(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rewriteQuery(r, func(q url.Values) bool {
			changed := false
			for key, vals := range q {
				if len(vals) < 2 {
					continue
				}

				field, _ := models.SplitParamKey(key)
				if slices.Contains(h.security.ParameterWhitelist, field) {
					continue
				}

				q[key] = vals[len(vals)-1:]
				changed = true
			}
			return changed
		})

		next.ServeHTTP(w, r)
	})
}
