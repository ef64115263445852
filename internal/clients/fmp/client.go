// Package fmp provides a backup fundamentals client for the Financial
// Modeling Prep ratios API.
package fmp

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
	"github.com/bobmcallan/stockscope/internal/models"
)

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// flexFloat64 handles JSON values that may be a number, a string, or null.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the FundamentalsClient interface
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

// NewClient creates a new FMP client
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

// ratiosResponse mirrors one entry of the FMP ratios array
type ratiosResponse struct {
	PriceEarningsRatio flexFloat64 `json:"priceEarningsRatio"`
	PriceToBookRatio   flexFloat64 `json:"priceToBookRatio"`
	ReturnOnEquity     flexFloat64 `json:"returnOnEquity"`
	ReturnOnAssets     flexFloat64 `json:"returnOnAssets"`
	NetProfitMargin    flexFloat64 `json:"netProfitMargin"`
	DebtEquityRatio    flexFloat64 `json:"debtEquityRatio"`
}

// GetFundamentals retrieves valuation ratios for a ticker. FMP does not
// expose revenue growth, so that field is left unset rather than
// guessed. Returns nil with nil error when the ticker has no coverage.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalRatios, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/ratios/%s?%s", c.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("ticker", ticker).Msg("FMP ratios request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FMP API error: status %d for ticker %s", resp.StatusCode, ticker)
	}

	var entries []ratiosResponse
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	d := entries[0]
	return &models.FundamentalRatios{
		PERatio:      float64(d.PriceEarningsRatio),
		PBRatio:      float64(d.PriceToBookRatio),
		ROE:          float64(d.ReturnOnEquity),
		ROA:          float64(d.ReturnOnAssets),
		NetMargin:    float64(d.NetProfitMargin),
		DebtToEquity: float64(d.DebtEquityRatio),
		Source:       "FMP",
	}, nil
}

// Ensure Client implements FundamentalsClient
var _ interfaces.FundamentalsClient = (*Client)(nil)
