// Package models defines data structures for StockScope
package models

import (
	"time"
)

// Quote holds a live price snapshot from a real-time quote provider
type Quote struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"` // current/last price
	ChangePct float64 `json:"change_pct"`
	Volume    int64   `json:"volume"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	PrevClose float64 `json:"prev_close"`
	Currency  string  `json:"currency"`
	Source    string  `json:"source,omitempty"`
}

// CandleBar represents a single day's price data, oldest first
type CandleBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TechnicalSnapshot merges the live quote with computed indicators.
// Price must be positive for the snapshot to be usable; every other
// field may be zero when its provider had no coverage. Immutable once
// assembled for a request.
type TechnicalSnapshot struct {
	Ticker    string  `json:"ticker"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Volume    int64   `json:"volume"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	PrevClose float64 `json:"prev_close"`
	Currency  string  `json:"currency"`
	Source    string  `json:"source"`
	SMA20     float64 `json:"sma_20"`
	SMA50     float64 `json:"sma_50"`
	RSI14     float64 `json:"rsi_14"`
	// 52-week range proxy: min/max of the fetched lookback window
	// (180 days by default), not a true calendar year.
	Low52Week  float64 `json:"low_52w"`
	High52Week float64 `json:"high_52w"`
}

// Rating is the categorical judgment derived from the fundamental score
type Rating string

const (
	RatingExcellent Rating = "excellent" // score >= 70
	RatingGood      Rating = "good"      // score >= 50
	RatingWeak      Rating = "weak"      // score < 50
)

// Signal classifies a value for presentation: positive, negative,
// cautionary, or informational-only.
type Signal string

const (
	SignalGood  Signal = "good"
	SignalBad   Signal = "bad"
	SignalWarn  Signal = "warn"
	SignalMuted Signal = "muted"
)

// FundamentalRatios holds normalized valuation/profitability ratios as
// returned by a fundamentals provider. A zero field means the provider
// omitted it.
type FundamentalRatios struct {
	PERatio       float64 `json:"pe_ratio"`
	PBRatio       float64 `json:"pb_ratio"`
	ROE           float64 `json:"roe"`
	ROA           float64 `json:"roa"`
	NetMargin     float64 `json:"net_margin"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	RevenueGrowth float64 `json:"revenue_growth"` // fraction, e.g. 0.12 = 12%
	Source        string  `json:"source"`
}

// FundamentalsSnapshot combines provider ratios with the derived score,
// rating, and per-metric evaluations. Immutable after creation; score
// and rating are always present even when every ratio is absent.
type FundamentalsSnapshot struct {
	FundamentalRatios
	Score   int                `json:"score"` // clamped to [0,100]
	Rating  Rating             `json:"rating"`
	Metrics []MetricEvaluation `json:"metrics,omitempty"`
}

// MetricEvaluation is a per-metric categorical judgment for display
type MetricEvaluation struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Assessment string `json:"assessment"`
	Signal     Signal `json:"signal"`
}

// NewsItem represents a single headline from a news provider
type NewsItem struct {
	Headline    string    `json:"headline"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
}

// AnalysisResult is the structured output of one analysis request.
// Built fresh per request, never persisted.
type AnalysisResult struct {
	ID          string    `json:"id"`
	Ticker      string    `json:"ticker"`
	GeneratedAt time.Time `json:"generated_at"`

	Technical    *TechnicalSnapshot    `json:"technical"`
	Fundamentals *FundamentalsSnapshot `json:"fundamentals"`
	News         []*NewsItem           `json:"news,omitempty"`

	RSIStatus   string `json:"rsi_status"`
	RSISignal   Signal `json:"rsi_signal"`
	Trend       string `json:"trend"`
	TrendSignal Signal `json:"trend_signal"`

	// RangePosition is the 52-week position percentage; valid only when
	// HasRangePosition is true (high > low).
	RangePosition    float64 `json:"range_position"`
	HasRangePosition bool    `json:"has_range_position"`

	Capital float64 `json:"capital"`
	Shares  float64 `json:"shares"` // capital / price

	Narrative string `json:"narrative,omitempty"`
}
