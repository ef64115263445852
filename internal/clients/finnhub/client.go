// Package finnhub provides a client for the Finnhub API, covering daily
// candles, fundamental metrics, and company news.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
)

const (
	DefaultBaseURL   = "https://finnhub.io/api/v1"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second

	// newsWindowDays bounds how far back company news is requested
	newsWindowDays = 7
)

// Client implements CandleClient, FundamentalsClient, and NewsClient
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	now        func() time.Time // injectable clock for testing
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

// NewClient creates a new Finnhub client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a Finnhub API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Finnhub API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request with the API token appended
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("token", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("endpoint", path).Msg("Finnhub API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// candleResponse mirrors the Finnhub stock/candle column-oriented payload
type candleResponse struct {
	Status  string    `json:"s"` // "ok" or "no_data"
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []int64   `json:"v"`
}

// GetDailyCandles retrieves daily OHLCV bars covering the last `days`
// calendar days, oldest first. An empty slice with nil error means
// Finnhub has no history for the ticker.
func (c *Client) GetDailyCandles(ctx context.Context, ticker string, days int) ([]models.CandleBar, error) {
	end := c.now()
	start := end.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("resolution", "D")
	params.Set("from", fmt.Sprintf("%d", start.Unix()))
	params.Set("to", fmt.Sprintf("%d", end.Unix()))

	var resp candleResponse
	if err := c.get(ctx, "/stock/candle", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" {
		c.logger.Debug().Str("ticker", ticker).Str("status", resp.Status).Msg("Finnhub returned no candle data")
		return nil, nil
	}

	bars := make([]models.CandleBar, 0, len(resp.Times))
	for i := range resp.Times {
		if i >= len(resp.Closes) {
			break
		}
		bar := models.CandleBar{
			Date:  time.Unix(resp.Times[i], 0).UTC(),
			Close: resp.Closes[i],
		}
		if i < len(resp.Opens) {
			bar.Open = resp.Opens[i]
		}
		if i < len(resp.Highs) {
			bar.High = resp.Highs[i]
		}
		if i < len(resp.Lows) {
			bar.Low = resp.Lows[i]
		}
		if i < len(resp.Volumes) {
			bar.Volume = resp.Volumes[i]
		}
		bars = append(bars, bar)
	}

	c.logger.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("Finnhub candles fetched")

	return bars, nil
}

// GetFundamentals retrieves fundamental metrics. Finnhub's metric map
// mixes numbers, strings, and nulls, so each field goes through the
// shared coercion helper. Returns nil with nil error when the ticker
// has no metric coverage.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalRatios, error) {
	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("metric", "all")

	var resp struct {
		Metric map[string]interface{} `json:"metric"`
	}
	if err := c.get(ctx, "/stock/metric", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Metric) == 0 {
		return nil, nil
	}

	m := resp.Metric
	return &models.FundamentalRatios{
		PERatio:       common.ToFloat(m["peBasicExclExtraTTM"], 0),
		PBRatio:       common.ToFloat(m["pbQuarterly"], 0),
		ROE:           common.ToFloat(m["roeTTM"], 0),
		ROA:           common.ToFloat(m["roaTTM"], 0),
		NetMargin:     common.ToFloat(m["netProfitMarginTTM"], 0),
		DebtToEquity:  common.ToFloat(m["totalDebt/totalEquityQuarterly"], 0),
		RevenueGrowth: common.ToFloat(m["revenueGrowthTTMYoy"], 0),
		Source:        "Finnhub",
	}, nil
}

// newsItemResponse mirrors one Finnhub company-news entry
type newsItemResponse struct {
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// GetNews retrieves up to limit recent headlines from the last week,
// API order preserved.
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error) {
	now := c.now()

	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("from", now.AddDate(0, 0, -newsWindowDays).Format("2006-01-02"))
	params.Set("to", now.Format("2006-01-02"))

	var items []newsItemResponse
	if err := c.get(ctx, "/company-news", params, &items); err != nil {
		return nil, err
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	news := make([]*models.NewsItem, len(items))
	for i, item := range items {
		news[i] = &models.NewsItem{
			Headline:    item.Headline,
			PublishedAt: time.Unix(item.Datetime, 0).UTC(),
			Source:      item.Source,
			URL:         item.URL,
		}
	}

	return news, nil
}

// Ensure Client implements the provider interfaces
var (
	_ interfaces.CandleClient       = (*Client)(nil)
	_ interfaces.FundamentalsClient = (*Client)(nil)
	_ interfaces.NewsClient         = (*Client)(nil)
)
