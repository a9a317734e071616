package http

import (
	"errors"
	"fmt"
	"net/http"
)

// recoverPanic turns a panic in a later stage into the JSON 500 response.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func (h *Handler) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			h.handleError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
