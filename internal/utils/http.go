package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrInvalidJSON is returned by DecodeJSON for bodies that are not valid JSON
// for the destination type.
var ErrInvalidJSON = errors.New("invalid JSON was passed")

var errTrailingData = errors.New("unexpected data after the JSON value")

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "success"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON decodes the request body into dst.
//
// An empty body leaves dst untouched. Bodies exceeding the limit installed by
// http.MaxBytesReader are returned as *http.MaxBytesError, any other decoding
// failure wraps ErrInvalidJSON.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	err := DecodeOne(json.NewDecoder(r.Body), dst)
	var maxBytesErr *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &maxBytesErr):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
}

// DecodeOne decodes a single JSON value from dec into dst and fails when
// anything but whitespace follows it. An empty input yields io.EOF.
func DecodeOne(dec *json.Decoder, dst any) error {
	if err := dec.Decode(dst); err != nil {
		return err
	}

	err := dec.Decode(&struct{}{})
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	default:
		return err
	}
}
