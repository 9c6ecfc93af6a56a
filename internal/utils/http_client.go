package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance with a
// default-configured underlying resty.Client. Each call returns an
// independent client with its own configuration, connection pool, and
// state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
