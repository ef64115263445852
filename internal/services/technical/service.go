// Package technical merges the live quote with computed indicators,
// degrading to backup providers and defaults when history is thin.
package technical

import (
	"context"
	"errors"
	"sync"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
	"github.com/bobmcallan/stockscope/internal/signals"
)

// ErrNoPriceData is the single fatal outcome: no provider could supply
// a positive price for the ticker.
var ErrNoPriceData = errors.New("no price data available for this ticker")

const (
	// Lookback window for daily candles. Doubles as the 52-week range
	// proxy window.
	candleLookbackDays = 180

	smaShortPeriod = 20
	smaLongPeriod  = 50
	rsiPeriod      = 14

	neutralRSI = 50
)

// Service assembles the technical snapshot for a ticker. The quote and
// backup clients may be nil when their providers are not configured;
// the candle client may be nil as well, in which case indicators fall
// back to the backup provider or defaults.
type Service struct {
	quote   interfaces.QuoteClient
	candles interfaces.CandleClient
	backup  interfaces.TechnicalBackupClient
	logger  *common.Logger
}

var _ interfaces.TechnicalService = (*Service)(nil)

func NewService(quote interfaces.QuoteClient, candles interfaces.CandleClient, backup interfaces.TechnicalBackupClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		quote:   quote,
		candles: candles,
		backup:  backup,
		logger:  logger,
	}
}

// GetSnapshot fetches the quote and candle history concurrently, then
// computes indicators. Provider faults degrade: a missing quote falls
// back to the latest candle close, missing history falls back to the
// backup SMA provider and neutral defaults. The only error returned is
// ErrNoPriceData.
func (s *Service) GetSnapshot(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error) {
	var (
		wg    sync.WaitGroup
		quote *models.Quote
		bars  []models.CandleBar
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		quote = s.fetchQuote(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		bars = s.fetchCandles(ctx, ticker)
	}()
	wg.Wait()

	snapshot := &models.TechnicalSnapshot{
		Ticker:   ticker,
		Currency: "USD",
	}

	if quote != nil {
		snapshot.Price = quote.Price
		snapshot.ChangePct = quote.ChangePct
		snapshot.Volume = quote.Volume
		snapshot.Open = quote.Open
		snapshot.High = quote.High
		snapshot.Low = quote.Low
		snapshot.PrevClose = quote.PrevClose
		if quote.Currency != "" {
			snapshot.Currency = quote.Currency
		}
		snapshot.Source = quote.Source
	} else if len(bars) > 0 {
		last := bars[len(bars)-1]
		snapshot.Price = last.Close
		snapshot.Open = last.Open
		snapshot.High = last.High
		snapshot.Low = last.Low
		snapshot.Volume = last.Volume
		if len(bars) > 1 {
			prev := bars[len(bars)-2].Close
			snapshot.PrevClose = prev
			if prev > 0 {
				snapshot.ChangePct = (last.Close - prev) / prev * 100
			}
		}
		snapshot.Source = "Daily close (delayed)"
	}

	if snapshot.Price <= 0 {
		s.logger.Warn().Str("ticker", ticker).Msg("No price available from any provider")
		return nil, ErrNoPriceData
	}

	s.computeIndicators(ctx, ticker, snapshot, bars)
	return snapshot, nil
}

func (s *Service) fetchQuote(ctx context.Context, ticker string) *models.Quote {
	if s.quote == nil {
		return nil
	}
	quote, err := s.quote.GetQuote(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Quote provider failed")
		return nil
	}
	return quote
}

func (s *Service) fetchCandles(ctx context.Context, ticker string) []models.CandleBar {
	if s.candles == nil {
		return nil
	}
	bars, err := s.candles.GetDailyCandles(ctx, ticker, candleLookbackDays)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Candle provider failed")
		return nil
	}
	return bars
}

// computeIndicators fills SMA/RSI/range from candle history when there
// is enough of it, otherwise from the backup SMA provider with the
// quote's own day range and a neutral RSI.
func (s *Service) computeIndicators(ctx context.Context, ticker string, snapshot *models.TechnicalSnapshot, bars []models.CandleBar) {
	if len(bars) > smaShortPeriod {
		snapshot.SMA20 = signals.SMA(bars, smaShortPeriod)
		if len(bars) >= smaLongPeriod {
			snapshot.SMA50 = signals.SMA(bars, smaLongPeriod)
		} else {
			snapshot.SMA50 = snapshot.SMA20
		}
		snapshot.RSI14 = signals.RSI(bars, rsiPeriod)
		snapshot.Low52Week, snapshot.High52Week = signals.Range52Week(bars)
		return
	}

	s.logger.Warn().Str("ticker", ticker).Int("bars", len(bars)).Msg("Insufficient history, using backup indicators")

	snapshot.SMA20 = s.backupSMA(ctx, ticker, smaShortPeriod, snapshot.Price)
	snapshot.SMA50 = s.backupSMA(ctx, ticker, smaLongPeriod, snapshot.Price)
	snapshot.RSI14 = neutralRSI
	snapshot.Low52Week = snapshot.Low
	snapshot.High52Week = snapshot.High
}

func (s *Service) backupSMA(ctx context.Context, ticker string, period int, fallback float64) float64 {
	if s.backup == nil {
		return fallback
	}
	value, err := s.backup.GetSMA(ctx, ticker, period)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Int("period", period).Msg("Backup SMA provider failed")
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	return value
}
