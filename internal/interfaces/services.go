package interfaces

import (
	"context"

	"github.com/bobmcallan/stockscope/internal/models"
)

// TechnicalService produces the merged quote + indicator snapshot.
// The only error it returns is the no-price-data failure; every
// provider fault short of that degrades to defaults.
type TechnicalService interface {
	GetSnapshot(ctx context.Context, ticker string) (*models.TechnicalSnapshot, error)
}

// FundamentalsService produces the scored fundamentals snapshot.
// It never fails: with no provider coverage the snapshot still carries
// the baseline score and rating.
type FundamentalsService interface {
	GetSnapshot(ctx context.Context, ticker string) *models.FundamentalsSnapshot
}

// NewsService merges headlines from the configured news providers
type NewsService interface {
	GetHeadlines(ctx context.Context, ticker string) []*models.NewsItem
}

// NarrativeService composes the fact-sheet prompt and requests AI
// narrative text. Returns "" when the narrative provider is not
// configured or fails.
type NarrativeService interface {
	Generate(ctx context.Context, result *models.AnalysisResult) string
}

// AnalysisService orchestrates a full analysis request
type AnalysisService interface {
	// Analyze validates inputs, acquires data from all providers, and
	// assembles the result. Validation failures and total price
	// unavailability are the only error outcomes.
	Analyze(ctx context.Context, ticker, capital string) (*models.AnalysisResult, error)
}
