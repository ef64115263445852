// Package signals provides technical indicator calculations and the
// fixed-threshold classifiers used across StockScope. Everything here is
// a pure function of its inputs.
package signals

import (
	"fmt"
	"math"

	"github.com/bobmcallan/stockscope/internal/models"
)

// SMA calculates the simple moving average of the last period closes.
// Bars are oldest first. Returns 0 with insufficient data.
func SMA(bars []models.CandleBar, period int) float64 {
	if period <= 0 || len(bars) < period {
		return 0
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(period)
}

// RSI calculates the Relative Strength Index over the last period close
// deltas. When the average loss is zero the value is pinned to the
// neutral 50 rather than the undefined division result.
func RSI(bars []models.CandleBar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 50
	}

	var gains, losses float64
	for i := len(bars) - period; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss <= 0 {
		return 50
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// Range52Week returns the lowest low and highest high across the whole
// fetched window. The caller's lookback (180 days by default) is a
// documented proxy for the true 52-week range.
func Range52Week(bars []models.CandleBar) (low, high float64) {
	if len(bars) == 0 {
		return 0, 0
	}

	low = math.MaxFloat64
	for _, bar := range bars {
		if bar.Low < low {
			low = bar.Low
		}
		if bar.High > high {
			high = bar.High
		}
	}
	if low == math.MaxFloat64 {
		low = 0
	}
	return low, high
}

// ClassifyRSI maps an RSI value to its zone and presentation signal.
// Overbought reads as a negative signal, oversold as positive.
func ClassifyRSI(rsi float64) (string, models.Signal) {
	if rsi > 70 {
		return "Overbought", models.SignalBad
	}
	if rsi < 30 {
		return "Oversold", models.SignalGood
	}
	return "Neutral", models.SignalWarn
}

// ClassifyTrend maps price vs. moving averages to a trend label.
func ClassifyTrend(price, sma20, sma50 float64) (string, models.Signal) {
	if price > sma20 && sma20 > sma50 {
		return "Uptrend (Golden Cross)", models.SignalGood
	}
	if price < sma20 && sma20 < sma50 {
		return "Downtrend (Death Cross)", models.SignalBad
	}
	return "Undefined", models.SignalWarn
}

// RangePosition computes where price sits within the [low, high] range
// as a percentage. Only defined when high > low.
func RangePosition(price, low, high float64) (float64, bool) {
	if high <= low {
		return 0, false
	}
	return (price - low) / (high - low) * 100, true
}

// ScoreFundamentals computes the 0-100 composite score from whatever
// ratios are present. The thresholds are fixed business rules; a zero
// ratio means the provider omitted it and contributes nothing.
func ScoreFundamentals(r *models.FundamentalRatios) int {
	score := 50

	if r != nil {
		if r.PERatio > 0 {
			if r.PERatio < 15 {
				score += 10
			} else if r.PERatio > 30 {
				score -= 10
			}
		}
		if r.ROE != 0 {
			if r.ROE > 15 {
				score += 15
			} else if r.ROE < 5 {
				score -= 10
			}
		}
		if r.NetMargin > 15 {
			score += 10
		}
		if r.DebtToEquity != 0 && r.DebtToEquity < 1 {
			score += 10
		}
		if r.RevenueGrowth > 0.10 {
			score += 10
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RateScore maps a composite score to its rating band.
func RateScore(score int) models.Rating {
	if score >= 70 {
		return models.RatingExcellent
	}
	if score >= 50 {
		return models.RatingGood
	}
	return models.RatingWeak
}

// EvaluateMetrics builds per-metric categorical judgments for display.
// A metric is skipped entirely when its ratio is absent (zero).
func EvaluateMetrics(r *models.FundamentalRatios) []models.MetricEvaluation {
	if r == nil {
		return nil
	}

	var metrics []models.MetricEvaluation

	if r.PERatio > 0 {
		assessment, signal := "Neutral", models.SignalWarn
		if r.PERatio < 15 {
			assessment, signal = "Cheap", models.SignalGood
		} else if r.PERatio > 30 {
			assessment, signal = "Expensive", models.SignalBad
		}
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "P/E (Price/Earnings)",
			Value:      fmt.Sprintf("%.2f", r.PERatio),
			Assessment: assessment,
			Signal:     signal,
		})
	}

	if r.ROE != 0 {
		assessment, signal := "Weak", models.SignalBad
		if r.ROE > 15 {
			assessment, signal = "Excellent", models.SignalGood
		} else if r.ROE > 10 {
			assessment, signal = "Good", models.SignalWarn
		}
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "ROE (Return on Equity)",
			Value:      fmt.Sprintf("%.2f%%", r.ROE),
			Assessment: assessment,
			Signal:     signal,
		})
	}

	if r.ROA != 0 {
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "ROA (Return on Assets)",
			Value:      fmt.Sprintf("%.2f%%", r.ROA),
			Assessment: "—",
			Signal:     models.SignalMuted,
		})
	}

	if r.NetMargin != 0 {
		assessment, signal := "Low", models.SignalBad
		if r.NetMargin > 15 {
			assessment, signal = "High", models.SignalGood
		} else if r.NetMargin > 5 {
			assessment, signal = "Average", models.SignalWarn
		}
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "Net Margin",
			Value:      fmt.Sprintf("%.2f%%", r.NetMargin),
			Assessment: assessment,
			Signal:     signal,
		})
	}

	if r.RevenueGrowth != 0 {
		assessment, signal := "Declining", models.SignalBad
		if r.RevenueGrowth > 0.05 {
			assessment, signal = "Growing", models.SignalGood
		} else if r.RevenueGrowth > 0 {
			assessment, signal = "Stable", models.SignalWarn
		}
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "Revenue Growth",
			Value:      fmt.Sprintf("%.2f%%", r.RevenueGrowth*100),
			Assessment: assessment,
			Signal:     signal,
		})
	}

	if r.DebtToEquity != 0 {
		assessment, signal := "High", models.SignalBad
		if r.DebtToEquity < 1 {
			assessment, signal = "Low", models.SignalGood
		} else if r.DebtToEquity < 2 {
			assessment, signal = "Moderate", models.SignalWarn
		}
		metrics = append(metrics, models.MetricEvaluation{
			Name:       "Debt/Equity",
			Value:      fmt.Sprintf("%.2f", r.DebtToEquity),
			Assessment: assessment,
			Signal:     signal,
		})
	}

	return metrics
}
