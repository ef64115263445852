// Package alphavantage provides a backup moving-average client for the
// Alpha Vantage API, used when primary candle history is too short.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the TechnicalBackupClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// smaResponse mirrors the Alpha Vantage SMA payload: a map of date to
// {"SMA": "value"} entries, values encoded as strings.
type smaResponse struct {
	Analysis map[string]struct {
		SMA string `json:"SMA"`
	} `json:"Technical Analysis: SMA"`
}

// GetSMA retrieves the most recent daily simple moving average for the
// given period. Returns 0 with nil error when no value is available.
func (c *Client) GetSMA(ctx context.Context, ticker string, period int) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("function", "SMA")
	params.Set("symbol", ticker)
	params.Set("interval", "daily")
	params.Set("time_period", strconv.Itoa(period))
	params.Set("series_type", "close")
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("ticker", ticker).Int("period", period).Msg("Alpha Vantage SMA request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("Alpha Vantage API error: status %d for ticker %s", resp.StatusCode, ticker)
	}

	var apiResp smaResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	// Entries are keyed by date; take the most recent one. Dates in
	// YYYY-MM-DD form compare correctly as strings.
	var latestDate string
	var latestSMA float64
	for date, entry := range apiResp.Analysis {
		if date > latestDate {
			latestDate = date
			latestSMA = common.ToFloat(entry.SMA, 0)
		}
	}

	return latestSMA, nil
}

// Ensure Client implements TechnicalBackupClient
var _ interfaces.TechnicalBackupClient = (*Client)(nil)
