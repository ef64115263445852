// Package fundamentals acquires valuation ratios with primary/secondary
// provider fallback and derives the composite score and rating.
package fundamentals

import (
	"context"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
	"github.com/bobmcallan/stockscope/internal/signals"
)

// Service resolves fundamental ratios from the primary provider, falling
// back to the secondary only when the primary has no coverage. Either
// client may be nil when its provider is not configured.
type Service struct {
	primary   interfaces.FundamentalsClient
	secondary interfaces.FundamentalsClient
	logger    *common.Logger
}

var _ interfaces.FundamentalsService = (*Service)(nil)

func NewService(primary, secondary interfaces.FundamentalsClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// GetSnapshot never fails: when no provider has coverage the snapshot
// still carries the baseline score and its rating.
func (s *Service) GetSnapshot(ctx context.Context, ticker string) *models.FundamentalsSnapshot {
	ratios := s.fetch(ctx, ticker)

	snapshot := &models.FundamentalsSnapshot{}
	if ratios != nil {
		snapshot.FundamentalRatios = *ratios
	}
	snapshot.Score = signals.ScoreFundamentals(ratios)
	snapshot.Rating = signals.RateScore(snapshot.Score)
	snapshot.Metrics = signals.EvaluateMetrics(ratios)
	return snapshot
}

func (s *Service) fetch(ctx context.Context, ticker string) *models.FundamentalRatios {
	if s.primary != nil {
		ratios, err := s.primary.GetFundamentals(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Primary fundamentals provider failed")
		} else if ratios != nil {
			return ratios
		}
	}

	if s.secondary != nil {
		ratios, err := s.secondary.GetFundamentals(ctx, ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Secondary fundamentals provider failed")
		} else if ratios != nil {
			return ratios
		}
	}

	s.logger.Warn().Str("ticker", ticker).Msg("No fundamentals coverage for ticker")
	return nil
}
