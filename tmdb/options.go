package tmdb

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. for a mock server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithImageBaseURL overrides the image CDN base URL.
func WithImageBaseURL(imageBaseURL string) Option {
	return func(c *Client) {
		if imageBaseURL != "" {
			c.images.baseURL = strings.TrimRight(imageBaseURL, "/")
		}
	}
}

// WithImageSize sets the width segment used for posters and backdrops.
func WithImageSize(size string) Option {
	return func(c *Client) {
		if size != "" {
			c.images.size = size
		}
	}
}

// WithLanguage sets the locale sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

// WithRegion sets the country whose release certification becomes the content rating.
func WithRegion(region string) Option {
	return func(c *Client) {
		if region != "" {
			c.region = strings.ToUpper(region)
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client. It has no effect
// when WithHTTPClient supplies a client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The client is used as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}
