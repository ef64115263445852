// Package analysis orchestrates a full analysis request across the
// technical, fundamentals, news, and narrative services.
package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
	"github.com/bobmcallan/stockscope/internal/signals"
)

// ErrEmptyTicker rejects a request whose ticker is blank after trimming.
var ErrEmptyTicker = errors.New("ticker is required")

// Service runs one analysis end to end. The technical gate comes first:
// without a usable price nothing else is fetched. Fundamentals and news
// then run concurrently, and the narrative is requested last so its
// prompt sees the fully assembled result.
type Service struct {
	technical    interfaces.TechnicalService
	fundamentals interfaces.FundamentalsService
	news         interfaces.NewsService
	narrative    interfaces.NarrativeService
	logger       *common.Logger

	now func() time.Time
}

var _ interfaces.AnalysisService = (*Service)(nil)

func NewService(technical interfaces.TechnicalService, fundamentals interfaces.FundamentalsService, news interfaces.NewsService, narrative interfaces.NarrativeService, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		technical:    technical,
		fundamentals: fundamentals,
		news:         news,
		narrative:    narrative,
		logger:       logger,
		now:          time.Now,
	}
}

// Analyze validates inputs before touching any provider, then acquires
// and assembles the result. Capital must parse to a positive amount; an
// empty string is rejected like any other invalid form.
func (s *Service) Analyze(ctx context.Context, ticker, capital string) (*models.AnalysisResult, error) {
	ticker = common.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	capitalAmount, err := common.ParseCapital(capital)
	if err != nil {
		return nil, err
	}

	start := s.now()
	s.logger.Info().Str("ticker", ticker).Msg("Starting analysis")

	technical, err := s.technical.GetSnapshot(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Analysis aborted")
		return nil, err
	}

	result := &models.AnalysisResult{
		ID:          uuid.New().String(),
		Ticker:      ticker,
		GeneratedAt: start,
		Technical:   technical,
		Capital:     capitalAmount,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Fundamentals = s.fundamentals.GetSnapshot(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		result.News = s.news.GetHeadlines(ctx, ticker)
	}()
	wg.Wait()

	result.RSIStatus, result.RSISignal = signals.ClassifyRSI(technical.RSI14)
	result.Trend, result.TrendSignal = signals.ClassifyTrend(technical.Price, technical.SMA20, technical.SMA50)
	result.RangePosition, result.HasRangePosition = signals.RangePosition(technical.Price, technical.Low52Week, technical.High52Week)

	if capitalAmount > 0 && technical.Price > 0 {
		result.Shares = capitalAmount / technical.Price
	}

	if s.narrative != nil {
		result.Narrative = s.narrative.Generate(ctx, result)
	}

	s.logger.Info().
		Str("ticker", ticker).
		Int("score", result.Fundamentals.Score).
		Str("trend", result.Trend).
		Dur("elapsed", s.now().Sub(start)).
		Msg("Analysis complete")

	return result, nil
}
