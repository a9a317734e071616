package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client configured for
// talking to the tours API.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:3000", 5*time.Second)
//	resp, err := client.R().Get("/api/v1/tours")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that sends and accepts JSON relative to
// baseURL. A zero timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
