// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tours/internal/utils"
)

// sanitizeOperators drops body and query keys that could be read as query
// operators: keys starting with "$" or containing ".".
func (h *Handler) sanitizeOperators(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := rewriteJSONBody(r, dropOperatorKeys); err != nil {
			h.handleError(w, r, err)
			return
		}

		rewriteQuery(r, func(q url.Values) bool {
			changed := false
			for key := range q {
				if isOperatorKey(key) {
					delete(q, key)
					changed = true
				}
			}
			return changed
		})

		next.ServeHTTP(w, r)
	})
}

// sanitizeXSS strips markup from every body and query string value.
func (h *Handler) sanitizeXSS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := func(v any) any { return h.cleanValue(v) }
		if err := rewriteJSONBody(r, clean); err != nil {
			h.handleError(w, r, err)
			return
		}

		rewriteQuery(r, func(q url.Values) bool {
			changed := false
			for _, vals := range q {
				for i, v := range vals {
					if cleaned := h.cleanString(v); cleaned != v {
						vals[i] = cleaned
						changed = true
					}
				}
			}
			return changed
		})

		next.ServeHTTP(w, r)
	})
}

func isOperatorKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

func dropOperatorKeys(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, child := range value {
			if isOperatorKey(key) {
				delete(value, key)
				continue
			}
			value[key] = dropOperatorKeys(child)
		}
	case []any:
		for i, child := range value {
			value[i] = dropOperatorKeys(child)
		}
	}
	return v
}

func (h *Handler) cleanValue(v any) any {
	switch value := v.(type) {
	case string:
		return h.cleanString(value)
	case map[string]any:
		for key, child := range value {
			value[key] = h.cleanValue(child)
		}
	case []any:
		for i, child := range value {
			value[i] = h.cleanValue(child)
		}
	}
	return v
}

// cleanString leaves plain text alone, so values like "Tom & Jerry" are not
// entity-escaped.
func (h *Handler) cleanString(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return h.sanitizer.Sanitize(s)
}

// rewriteJSONBody decodes a JSON request body, passes it through transform
// and replaces the body with the re-encoded result. Empty and non-JSON
// bodies are left untouched.
func rewriteJSONBody(r *http.Request, transform func(any) any) error {
	if r.Body == nil || r.Body == http.NoBody || !isJSONContent(r) {
		return nil
	}

	raw, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		r.Body = io.NopCloser(bytes.NewReader(raw))
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var body any
	if err := utils.DecodeOne(dec, &body); err != nil {
		return fmt.Errorf("%w: %w", utils.ErrInvalidJSON, err)
	}

	cleaned, err := json.Marshal(transform(body))
	if err != nil {
		return fmt.Errorf("%w: %w", utils.ErrInvalidJSON, err)
	}

	r.Body = io.NopCloser(bytes.NewReader(cleaned))
	r.ContentLength = int64(len(cleaned))
	r.Header.Set("Content-Length", strconv.Itoa(len(cleaned)))

	return nil
}

// isJSONContent treats requests without a Content-Type as JSON.
func isJSONContent(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// rewriteQuery re-encodes the query string when edit reports a change.
func rewriteQuery(r *http.Request, edit func(url.Values) bool) {
	if r.URL.RawQuery == "" {
		return
	}

	q := r.URL.Query()
	if edit(q) {
		r.URL.RawQuery = q.Encode()
	}
}
