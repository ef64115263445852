package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/stockscope/internal/models"
)

// generateBars creates daily bars from closing prices, oldest first.
func generateBars(closes []float64) []models.CandleBar {
	bars := make([]models.CandleBar, len(closes))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.CandleBar{
			Date:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		}
	}
	return bars
}

// generateTrendBars creates `count` bars starting at `start`, each close
// moving by `step`.
func generateTrendBars(start, step float64, count int) []models.CandleBar {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return generateBars(closes)
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		bars     []models.CandleBar
		period   int
		expected float64
	}{
		{
			name:     "simple 3-day SMA",
			bars:     generateBars([]float64{10, 20, 30}),
			period:   3,
			expected: 20.0,
		},
		{
			name:     "uses only the most recent closes",
			bars:     generateBars([]float64{100, 100, 10, 20, 30}),
			period:   3,
			expected: 20.0,
		},
		{
			name:     "insufficient data",
			bars:     generateBars([]float64{10, 20}),
			period:   5,
			expected: 0.0,
		},
		{
			name:     "zero period",
			bars:     generateBars([]float64{10, 20, 30}),
			period:   0,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SMA(tt.bars, tt.period)
			assert.InDelta(t, tt.expected, result, 0.01)
		})
	}
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		bars   []models.CandleBar
		period int
		minRSI float64
		maxRSI float64
	}{
		{
			name: "mostly gains has high RSI",
			bars: generateBars([]float64{
				50, 52, 54, 53.5, 56, 58, 60, 59.5, 62, 64,
				66, 65.5, 68, 70, 72, 74, 76, 75.5, 78, 80,
			}),
			period: 14,
			minRSI: 60,
			maxRSI: 100,
		},
		{
			name: "mostly losses has low RSI",
			bars: generateBars([]float64{
				100, 98, 96, 96.5, 94, 92, 90, 90.5, 88, 86,
				84, 84.5, 82, 80, 78, 76, 74, 74.5, 72, 70,
			}),
			period: 14,
			minRSI: 0,
			maxRSI: 40,
		},
		{
			name:   "flat series pins to neutral",
			bars:   generateBars([]float64{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50}),
			period: 14,
			minRSI: 50,
			maxRSI: 50,
		},
		{
			name:   "insufficient data defaults to neutral",
			bars:   generateBars([]float64{10, 11, 12}),
			period: 14,
			minRSI: 50,
			maxRSI: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RSI(tt.bars, tt.period)
			assert.GreaterOrEqual(t, result, tt.minRSI)
			assert.LessOrEqual(t, result, tt.maxRSI)
		})
	}
}

func TestRSIAllGainsIsNeutral(t *testing.T) {
	// Zero average loss would divide by zero; the value pins to 50.
	bars := generateTrendBars(10, 2.0, 20)
	assert.Equal(t, 50.0, RSI(bars, 14))
}

func TestRange52Week(t *testing.T) {
	bars := generateBars([]float64{50, 80, 30, 60})
	low, high := Range52Week(bars)
	assert.InDelta(t, 30*0.99, low, 0.01)
	assert.InDelta(t, 80*1.01, high, 0.01)

	low, high = Range52Week(nil)
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 0.0, high)
}

func TestClassifyRSI(t *testing.T) {
	tests := []struct {
		rsi    float64
		status string
		signal models.Signal
	}{
		{75, "Overbought", models.SignalBad},
		{70, "Neutral", models.SignalWarn},
		{50, "Neutral", models.SignalWarn},
		{30, "Neutral", models.SignalWarn},
		{25, "Oversold", models.SignalGood},
	}

	for _, tt := range tests {
		status, signal := ClassifyRSI(tt.rsi)
		assert.Equal(t, tt.status, status, "rsi=%v", tt.rsi)
		assert.Equal(t, tt.signal, signal, "rsi=%v", tt.rsi)
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name                string
		price, sma20, sma50 float64
		trend               string
		signal              models.Signal
	}{
		{"golden cross", 110, 105, 100, "Uptrend (Golden Cross)", models.SignalGood},
		{"death cross", 90, 95, 100, "Downtrend (Death Cross)", models.SignalBad},
		{"mixed", 100, 105, 95, "Undefined", models.SignalWarn},
		{"price between averages", 102, 105, 100, "Undefined", models.SignalWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, signal := ClassifyTrend(tt.price, tt.sma20, tt.sma50)
			assert.Equal(t, tt.trend, trend)
			assert.Equal(t, tt.signal, signal)
		})
	}
}

func TestRangePosition(t *testing.T) {
	pos, ok := RangePosition(75, 50, 100)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, pos, 0.01)

	pos, ok = RangePosition(100, 100, 100)
	assert.False(t, ok)
	assert.Equal(t, 0.0, pos)

	_, ok = RangePosition(50, 100, 90)
	assert.False(t, ok)
}

func TestScoreFundamentals(t *testing.T) {
	tests := []struct {
		name     string
		ratios   *models.FundamentalRatios
		expected int
	}{
		{
			name:     "nil ratios keep the baseline",
			ratios:   nil,
			expected: 50,
		},
		{
			name:     "empty ratios keep the baseline",
			ratios:   &models.FundamentalRatios{},
			expected: 50,
		},
		{
			name:     "cheap and profitable",
			ratios:   &models.FundamentalRatios{PERatio: 12, ROE: 18},
			expected: 75,
		},
		{
			name: "everything strong clamps below the cap",
			ratios: &models.FundamentalRatios{
				PERatio: 10, ROE: 20, NetMargin: 20,
				DebtToEquity: 0.5, RevenueGrowth: 0.15,
			},
			expected: 100,
		},
		{
			name:     "expensive and weak",
			ratios:   &models.FundamentalRatios{PERatio: 40, ROE: 2},
			expected: 30,
		},
		{
			name:     "negative P/E contributes nothing",
			ratios:   &models.FundamentalRatios{PERatio: -8},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreFundamentals(tt.ratios))
		})
	}
}

func TestRateScore(t *testing.T) {
	assert.Equal(t, models.RatingExcellent, RateScore(70))
	assert.Equal(t, models.RatingExcellent, RateScore(100))
	assert.Equal(t, models.RatingGood, RateScore(69))
	assert.Equal(t, models.RatingGood, RateScore(50))
	assert.Equal(t, models.RatingWeak, RateScore(49))
	assert.Equal(t, models.RatingWeak, RateScore(0))
}

func TestEvaluateMetrics(t *testing.T) {
	ratios := &models.FundamentalRatios{
		PERatio:       12,
		ROE:           18,
		NetMargin:     20,
		DebtToEquity:  0.5,
		RevenueGrowth: 0.12,
	}

	metrics := EvaluateMetrics(ratios)
	assert.Len(t, metrics, 5)

	byName := make(map[string]models.MetricEvaluation)
	for _, m := range metrics {
		byName[m.Name] = m
	}

	assert.Equal(t, "Cheap", byName["P/E (Price/Earnings)"].Assessment)
	assert.Equal(t, "Excellent", byName["ROE (Return on Equity)"].Assessment)
	assert.Equal(t, "High", byName["Net Margin"].Assessment)
	assert.Equal(t, "Low", byName["Debt/Equity"].Assessment)
	assert.Equal(t, "Growing", byName["Revenue Growth"].Assessment)
	assert.Equal(t, "12.00%", byName["Revenue Growth"].Value)
}

func TestEvaluateMetricsSkipsAbsent(t *testing.T) {
	metrics := EvaluateMetrics(&models.FundamentalRatios{ROE: 8})
	assert.Len(t, metrics, 1)
	assert.Equal(t, "ROE (Return on Equity)", metrics[0].Name)
	assert.Equal(t, "Weak", metrics[0].Assessment)

	assert.Nil(t, EvaluateMetrics(nil))
}
