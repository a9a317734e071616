package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

const compressionLevel = 5

var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/css",
	"text/plain",
	"application/javascript",
	"image/svg+xml",
}

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// compressResponses gzips responses for clients sending Accept-Encoding.
func compressResponses() func(http.Handler) http.Handler {
	return middleware.Compress(compressionLevel, compressibleTypes...)
}

// decompressRequests replaces a gzip encoded request body with its
// decompressed stream.
func (h *Handler) decompressRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") || r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(r.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			h.handleError(w, r, wrapAppError(err, invalidGzipMessage, http.StatusBadRequest))
			return
		}

		body := r.Body
		r.Body = &wrappedReadCloser{
			Reader: gzipReader,
			OnClose: func() {
				gzipReader.Close()
				gzipReaderPool.Put(gzipReader)
				body.Close()
			},
		}
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1

		next.ServeHTTP(w, r)
	})
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.OnClose()
		w.OnClose = nil
	}
	return nil
}
