// Package news merges headlines from the configured providers into a
// single capped list.
package news

import (
	"context"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
)

const (
	// Each provider contributes at most perSourceLimit headlines; the
	// merged list is truncated to totalLimit.
	perSourceLimit = 5
	totalLimit     = 10
)

// Service gathers headlines from up to two providers. Either client may
// be nil; a failed or missing provider simply contributes nothing.
type Service struct {
	primary   interfaces.NewsClient
	secondary interfaces.NewsClient
	logger    *common.Logger
}

var _ interfaces.NewsService = (*Service)(nil)

func NewService(primary, secondary interfaces.NewsClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// GetHeadlines returns the merged list, primary provider's headlines
// first, each source capped, the whole list truncated. Never fails; the
// worst case is an empty list.
func (s *Service) GetHeadlines(ctx context.Context, ticker string) []*models.NewsItem {
	merged := make([]*models.NewsItem, 0, totalLimit)
	merged = append(merged, s.fetch(ctx, s.primary, ticker)...)
	merged = append(merged, s.fetch(ctx, s.secondary, ticker)...)

	if len(merged) > totalLimit {
		merged = merged[:totalLimit]
	}
	return merged
}

func (s *Service) fetch(ctx context.Context, client interfaces.NewsClient, ticker string) []*models.NewsItem {
	if client == nil {
		return nil
	}
	items, err := client.GetNews(ctx, ticker, perSourceLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("News provider failed")
		return nil
	}
	if len(items) > perSourceLimit {
		items = items[:perSourceLimit]
	}
	return items
}
