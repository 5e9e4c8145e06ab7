// Package tequila talks to the Tequila flight API: it resolves place names to
// location codes and runs round-trip searches.
package tequila

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/flight-search/flight-finder/internal/domain"
	"github.com/flight-search/flight-finder/internal/infrastructure/cache"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/infrastructure/ratelimit"
)

// ProviderName identifies this adapter in errors and logs.
const ProviderName = "tequila"

// DefaultBaseURL is the public Tequila endpoint.
const DefaultBaseURL = "https://tequila-api.kiwi.com"

// Endpoint names used for rate limiting.
const (
	endpointLocations = "locations"
	endpointSearch    = "search"
)

// Config holds the settings of a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements domain.LocationResolver and domain.FlightSearcher.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      cache.LocationCache
	limiter    *ratelimit.EndpointLimiter
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache sets the location-code cache.
func WithCache(c cache.LocationCache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithLimiter sets the request limiter.
func WithLimiter(l *ratelimit.EndpointLimiter) Option {
	return func(cl *Client) { cl.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithHTTPClient replaces the HTTP client. The configured timeout is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) { cl.httpClient = hc }
}

// NewClient creates a Client. Without options it uses no cache, the default
// request limits and a silent logger.
func NewClient(cfg Config, opts ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache.NewNoOpCache(),
		limiter:    ratelimit.NewEndpointLimiter(ratelimit.DefaultConfig()),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent(ProviderName)
	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// get performs an authenticated GET and returns the body of a 2xx answer.
// Any other status becomes a ProviderError carrying the API's error message.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, endpoint); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.NewRetryableProviderError(ProviderName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, err)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("tequila request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewProviderUnavailableError(ProviderName, errorMessage(resp.StatusCode, body))
	}
	return body, nil
}

// errorMessage extracts the API's error text, falling back to the status line.
func errorMessage(status int, body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error", "message"} {
			if msg := gjson.GetBytes(body, path).String(); msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("status %d %s", status, http.StatusText(status))
}
