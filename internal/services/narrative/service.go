// Package narrative composes the fact-sheet prompt from an assembled
// analysis and requests AI commentary for it.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/models"
)

// Service wraps a narrative client. The client may be nil when no
// narrative provider is configured; Generate then returns "".
type Service struct {
	client interfaces.NarrativeClient
	logger *common.Logger
}

var _ interfaces.NarrativeService = (*Service)(nil)

func NewService(client interfaces.NarrativeClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// Generate builds the prompt and requests the narrative. Failures are
// logged and degrade to an empty narrative; they never fail the
// analysis that requested it.
func (s *Service) Generate(ctx context.Context, result *models.AnalysisResult) string {
	if s.client == nil || result == nil {
		return ""
	}

	text, err := s.client.GenerateAnalysis(ctx, BuildPrompt(result))
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", result.Ticker).Msg("Narrative generation failed")
		return ""
	}
	return text
}

// BuildPrompt renders every acquired fact into a plain-text sheet the
// model is asked to comment on. Absent values render as their zero
// forms rather than being hidden; the model is told data may be
// incomplete.
func BuildPrompt(result *models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced equity analyst. Using only the data below, write a concise investment analysis of %s for a retail investor. ", result.Ticker)
	b.WriteString("Cover the technical picture, the fundamental quality, and the recent news tone, then finish with a balanced conclusion. ")
	b.WriteString("Some fields may be missing or zero when a data provider had no coverage; do not invent values for them.\n\n")

	if t := result.Technical; t != nil {
		fmt.Fprintf(&b, "Price: %.2f %s (%+.2f%% today)\n", t.Price, t.Currency, t.ChangePct)
		fmt.Fprintf(&b, "Volume: %d\n", t.Volume)
		fmt.Fprintf(&b, "RSI(14): %.1f (%s)\n", t.RSI14, result.RSIStatus)
		fmt.Fprintf(&b, "SMA20: %.2f  SMA50: %.2f  Trend: %s\n", t.SMA20, t.SMA50, result.Trend)
		fmt.Fprintf(&b, "52-week range: %.2f - %.2f\n", t.Low52Week, t.High52Week)
		if result.HasRangePosition {
			fmt.Fprintf(&b, "Position in range: %.1f%%\n", result.RangePosition)
		}
	}

	if f := result.Fundamentals; f != nil {
		b.WriteString("\nFundamentals")
		if f.Source != "" {
			fmt.Fprintf(&b, " (%s)", f.Source)
		}
		b.WriteString(":\n")
		fmt.Fprintf(&b, "P/E: %.2f  P/B: %.2f\n", f.PERatio, f.PBRatio)
		fmt.Fprintf(&b, "ROE: %.2f%%  ROA: %.2f%%  Net margin: %.2f%%\n", f.ROE, f.ROA, f.NetMargin)
		fmt.Fprintf(&b, "Debt/Equity: %.2f  Revenue growth: %.2f%%\n", f.DebtToEquity, f.RevenueGrowth*100)
		fmt.Fprintf(&b, "Composite score: %d/100 (%s)\n", f.Score, f.Rating)
	}

	if len(result.News) > 0 {
		b.WriteString("\nRecent headlines:\n")
		for _, item := range result.News {
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", item.PublishedAt.Format("2006-01-02 15:04"), item.Headline, item.Source)
		}
	}

	if result.Capital > 0 {
		fmt.Fprintf(&b, "\nThe investor has %.2f to allocate, which buys about %.4f shares at the current price. ", result.Capital, result.Shares)
		b.WriteString("Comment on whether this position size is sensible for a single-stock allocation.\n")
	}

	return b.String()
}
