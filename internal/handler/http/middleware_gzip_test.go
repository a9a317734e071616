package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestCompressResponses(t *testing.T) {
	router := newTestHandler(statsServices()).Init()

	tests := []struct {
		name           string
		target         string
		acceptEncoding string
		wantGzipped    bool
	}{
		{
			name:           "json is compressed when client accepts gzip",
			target:         "/api/v1/tours/tour-stats",
			acceptEncoding: "gzip",
			wantGzipped:    true,
		},
		{
			name:           "accept-encoding with several values",
			target:         "/api/v1/tours/tour-stats",
			acceptEncoding: "deflate, gzip, br",
			wantGzipped:    true,
		},
		{
			name:        "no compression without accept-encoding",
			target:      "/api/v1/tours/tour-stats",
			wantGzipped: false,
		},
		{
			name:           "error responses are compressed too",
			target:         "/api/v1/nonexistent",
			acceptEncoding: "gzip",
			wantGzipped:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := serve(router, req)

			raw := rec.Body.Bytes()
			if tt.wantGzipped {
				require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
				zr, err := gzip.NewReader(bytes.NewReader(raw))
				require.NoError(t, err)
				raw, err = io.ReadAll(zr)
				require.NoError(t, err)
			} else {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
			}

			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Contains(t, body, "status")
		})
	}

	t.Run("metrics are compressed once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := serve(router, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(rec.Body)
		require.NoError(t, err)
		text, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Contains(t, string(text), "go_goroutines")
	})
}

func TestDecompressRequests(t *testing.T) {
	h := newTestHandler(nil)

	t.Run("gzip body is decoded", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(gzipBytes(t, `{"email":"a@b.c"}`)))
		req.Header.Set("Content-Encoding", "gzip")

		rec, seen, body := captureRequest(t, h.decompressRequests, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"email":"a@b.c"}`, body)
		assert.Empty(t, seen.Header.Get("Content-Encoding"))
	})

	t.Run("plain body passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(`{"email":"a@b.c"}`))

		_, _, body := captureRequest(t, h.decompressRequests, req)
		assert.Equal(t, `{"email":"a@b.c"}`, body)
	})

	t.Run("invalid gzip is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader("not gzip at all"))
		req.Header.Set("Content-Encoding", "gzip")

		rec, seen, _ := captureRequest(t, h.decompressRequests, req)
		assert.Nil(t, seen)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"status": "fail", "message": "Invalid gzip data"}, decodeBody(t, rec))
	})
}

func TestDecompressRequests_ThroughPipeline(t *testing.T) {
	var got models.LoginRequest
	auth := &fakeAuthService{loginFn: func(_ context.Context, req models.LoginRequest) (models.User, error) {
		got = req
		return models.User{}, service.ErrIncorrectCredentials
	}}
	router := newTestHandler(&service.Services{AuthService: auth}).Init()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login",
		bytes.NewReader(gzipBytes(t, `{"email":"someone@example.com","password":"pass1234"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	rec := serve(router, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "someone@example.com", got.Email)
	assert.Equal(t, "pass1234", got.Password)

	t.Run("decompressed size counts against the body limit", func(t *testing.T) {
		big := `{"email":"` + strings.Repeat("a", config.DefaultBodyLimit) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewReader(gzipBytes(t, big)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Content-Encoding", "gzip")

		rec := serve(router, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}
