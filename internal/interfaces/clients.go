// Package interfaces defines client and service contracts for StockScope
package interfaces

import (
	"context"

	"github.com/bobmcallan/stockscope/internal/models"
)

// QuoteClient provides a live price snapshot for a ticker
type QuoteClient interface {
	// GetQuote retrieves the current quote. A nil result with nil error
	// means the provider has no data for the ticker.
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

// CandleClient provides historical daily OHLCV bars
type CandleClient interface {
	// GetDailyCandles retrieves daily bars covering the last `days`
	// calendar days, oldest first. An empty slice with nil error means
	// the provider has no history for the ticker.
	GetDailyCandles(ctx context.Context, ticker string, days int) ([]models.CandleBar, error)
}

// TechnicalBackupClient provides single moving-average lookups, used
// only when candle history is insufficient to compute them locally.
type TechnicalBackupClient interface {
	// GetSMA retrieves the latest simple moving average for the period.
	// Returns 0 with nil error when the provider has no value.
	GetSMA(ctx context.Context, ticker string, period int) (float64, error)
}

// FundamentalsClient provides normalized valuation/profitability ratios
type FundamentalsClient interface {
	// GetFundamentals retrieves ratios for a ticker. A nil result with
	// nil error means the provider has no coverage.
	GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalRatios, error)
}

// NewsClient provides recent headlines for a ticker
type NewsClient interface {
	// GetNews retrieves up to limit recent headlines, provider order preserved.
	GetNews(ctx context.Context, ticker string, limit int) ([]*models.NewsItem, error)
}

// NarrativeClient generates free-form analysis text from a composed prompt
type NarrativeClient interface {
	GenerateAnalysis(ctx context.Context, prompt string) (string, error)
}
