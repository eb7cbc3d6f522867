package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/flickhunt/metrics"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultImageSize    = "w500"
	DefaultLanguage     = "en-US"
	DefaultRegion       = "US"
	DefaultTimeout      = 30 * time.Second
)

// Lookup kinds, used for logging and metrics
const (
	kindSearch   = "search"
	kindTrending = "trending"
	kindDetail   = "detail"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	region     string
	images     imageURLs
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client. An empty API key is accepted; the
// provider then rejects every call and the rejection surfaces as a remote error.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   strings.TrimSpace(apiKey),
		language: DefaultLanguage,
		region:   DefaultRegion,
		images: imageURLs{
			baseURL: DefaultImageBaseURL,
			size:    DefaultImageSize,
		},
		timeout: DefaultTimeout,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	if _, err := url.ParseRequestURI(client.baseURL); err != nil {
		return nil, fmt.Errorf("invalid tmdb base URL %q: %w", client.baseURL, err)
	}

	if client.apiKey == "" {
		logger.Warn().Msg("No TMDB API key configured, lookups will be rejected by the provider")
	}

	return client, nil
}

// doRequest performs a GET request and decodes a successful body into dst
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, dst any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return networkError("create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep the API key out of logged errors
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.baseURL + endpoint
		}
		return networkError("request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError("read response body", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return networkError("request", fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return networkError("decode response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.failed() {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.StatusCode,
			Message:    env.StatusMessage,
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return networkError("decode response", err)
	}

	return nil
}

// TestConnection verifies that the provider is reachable and accepts the API key
func (c *Client) TestConnection(ctx context.Context) error {
	var cfg struct {
		Images struct {
			SecureBaseURL string `json:"secure_base_url"`
		} `json:"images"`
	}
	if err := c.doRequest(ctx, "/configuration", nil, &cfg); err != nil {
		return err
	}

	c.logger.Debug().Str("image_base_url", cfg.Images.SecureBaseURL).Msg("Connected to TMDB")
	return nil
}

// SearchByTitle searches movies by title
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Summary{}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("language", c.language)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	start := time.Now()
	var page pageResponse
	err := c.doRequest(ctx, "/search/movie", params, &page)
	c.observe(kindSearch, start, len(page.Results), err)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	c.logger.Debug().
		Str("query", query).
		Int("count", len(page.Results)).
		Int("total", page.TotalResults).
		Msg("Searched movies")

	return c.images.summaries(page.Results), nil
}

// ListTrending returns the first page of popular movies
func (c *Client) ListTrending(ctx context.Context) ([]Summary, error) {
	params := url.Values{}
	params.Set("language", c.language)
	params.Set("page", "1")

	start := time.Now()
	var page pageResponse
	err := c.doRequest(ctx, "/movie/popular", params, &page)
	c.observe(kindTrending, start, len(page.Results), err)
	if err != nil {
		return nil, fmt.Errorf("list trending: %w", err)
	}

	c.logger.Debug().Int("count", len(page.Results)).Msg("Retrieved trending movies")

	return c.images.summaries(page.Results), nil
}

// GetByID fetches one movie with its credits and release certifications
func (c *Client) GetByID(ctx context.Context, id string) (*Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &NotFoundError{ID: id}
	}

	params := url.Values{}
	params.Set("language", c.language)
	params.Set("append_to_response", "credits,release_dates")

	start := time.Now()
	var details movieDetails
	err := c.doRequest(ctx, "/movie/"+url.PathEscape(id), params, &details)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		err = &NotFoundError{ID: id, Message: apiErr.Message}
	}
	c.observe(kindDetail, start, 1, err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}

	detail := c.images.detail(details, c.region, c.language)
	if details.ID == 0 {
		detail.ID = id
	}
	return detail, nil
}

// observe logs failures and records metrics for one lookup
func (c *Client) observe(kind string, start time.Time, count int, err error) {
	elapsed := time.Since(start)

	outcome := metrics.OutcomeOK
	switch Classify(err) {
	case KindNetwork:
		outcome = metrics.OutcomeNetwork
		c.logger.Error().Err(err).Str("kind", kind).Dur("elapsed", elapsed).Msg("TMDB request failed")
	case KindRemote:
		outcome = metrics.OutcomeRemote
		c.logger.Warn().Err(err).Str("kind", kind).Msg("TMDB reported an error")
	case KindNotFound:
		outcome = metrics.OutcomeNotFound
	default:
		if count == 0 {
			outcome = metrics.OutcomeEmpty
		}
	}

	metrics.ObserveLookup(kind, outcome, elapsed)
}
