package http

import (
	"net/http"
	"path"
)

// serveStatic answers GET and HEAD requests that match a regular file in the
// static directory. Everything else continues down the chain.
func (h *Handler) serveStatic(next http.Handler) http.Handler {
	if h.server.StaticDir == "" {
		return next
	}

	root := http.Dir(h.server.StaticDir)
	files := http.FileServer(root)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) && isRegularFile(root, r.URL.Path) {
			files.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isRegularFile(root http.FileSystem, name string) bool {
	f, err := root.Open(path.Clean("/" + name))
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}
