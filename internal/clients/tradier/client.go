// Package tradier provides a client for the Tradier market data API
package tradier

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
	DefaultBaseURL   = "https://api.tradier.com/v1"
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

// Client implements the QuoteClient interface against Tradier
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

// NewClient creates a new Tradier client
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

// quoteResponse mirrors the Tradier quotes payload. A single-symbol
// lookup returns one quote object, not an array.
type quoteResponse struct {
	Quotes struct {
		Quote struct {
			Symbol           string       `json:"symbol"`
			Last             *flexFloat64 `json:"last"`
			ChangePercentage flexFloat64  `json:"change_percentage"`
			Volume           int64        `json:"volume"`
			Open             flexFloat64  `json:"open"`
			High             flexFloat64  `json:"high"`
			Low              flexFloat64  `json:"low"`
			PrevClose        flexFloat64  `json:"prevclose"`
		} `json:"quote"`
	} `json:"quotes"`
}

// GetQuote retrieves a live quote for a ticker. Returns nil with nil
// error when Tradier has no last price for the symbol.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("symbols", ticker)

	reqURL := fmt.Sprintf("%s/markets/quotes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("ticker", ticker).Msg("Tradier quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Tradier API error: status %d for ticker %s", resp.StatusCode, ticker)
	}

	var apiResp quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	q := apiResp.Quotes.Quote
	if q.Last == nil {
		return nil, nil
	}

	c.logger.Info().Str("ticker", ticker).Float64("price", float64(*q.Last)).Msg("Tradier quote")

	return &models.Quote{
		Ticker:    ticker,
		Price:     float64(*q.Last),
		ChangePct: float64(q.ChangePercentage),
		Volume:    q.Volume,
		Open:      float64(q.Open),
		High:      float64(q.High),
		Low:       float64(q.Low),
		PrevClose: float64(q.PrevClose),
		Currency:  "USD",
		Source:    "Tradier (real-time)",
	}, nil
}

// Ensure Client implements QuoteClient
var _ interfaces.QuoteClient = (*Client)(nil)
