package grepapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/codegrep/internal/core/domain"
	"github.com/custodia-labs/codegrep/internal/core/ports/driven"
	"github.com/custodia-labs/codegrep/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

const (
	// DefaultEndpoint is the grep.app search API.
	DefaultEndpoint = "https://grep.app/api/search"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 512
)

// Config configures a Client. Zero values select the defaults.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	Rate       float64
	Burst      int
	UserAgent  string
	HTTPClient *http.Client
}

// Client is the grep.app search client.
type Client struct {
	endpoint    *url.URL
	httpClient  *http.Client
	rateLimiter *RateLimiter
	userAgent   string
}

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: endpoint must be http(s): %q", domain.ErrInvalidInput, endpoint)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "codegrep"
	}

	return &Client{
		endpoint:    u,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(cfg.Rate, cfg.Burst),
		userAgent:   userAgent,
	}, nil
}

// Search fetches one page of results.
func (c *Client) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.BuildURL(params)
	logger.Debug("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	var wire searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return wire.toDomain(), nil
}

// BuildURL encodes params as query parameters on the endpoint.
// The page parameter is omitted for page one.
func (c *Client) BuildURL(params domain.SearchParams) string {
	q := c.endpoint.Query()
	q.Set("format", "e")
	q.Set("q", params.Query)
	if params.Page > 1 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.CaseSensitive {
		q.Set("case", "true")
	}
	if params.Regex {
		q.Set("regexp", "true")
	}
	if params.WholeWords {
		q.Set("words", "true")
	}
	for _, lang := range params.Languages {
		q.Add("f.lang", lang)
	}
	if params.Repo != "" {
		q.Set("f.repo.pattern", params.Repo)
	}
	if params.Path != "" {
		q.Set("f.path.pattern", params.Path)
	}

	u := *c.endpoint
	u.RawQuery = q.Encode()
	return u.String()
}
