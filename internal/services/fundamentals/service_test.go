package fundamentals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockscope/internal/models"
)

type mockFundamentalsClient struct {
	ratios *models.FundamentalRatios
	err    error
	calls  int
}

func (m *mockFundamentalsClient) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalRatios, error) {
	m.calls++
	return m.ratios, m.err
}

func TestGetSnapshot_PrimaryWins(t *testing.T) {
	primary := &mockFundamentalsClient{ratios: &models.FundamentalRatios{PERatio: 12, ROE: 18, Source: "Finnhub"}}
	secondary := &mockFundamentalsClient{ratios: &models.FundamentalRatios{PERatio: 99, Source: "FMP"}}

	svc := NewService(primary, secondary, nil)
	snap := svc.GetSnapshot(context.Background(), "AAPL")

	require.NotNil(t, snap)
	assert.Equal(t, "Finnhub", snap.Source)
	assert.Equal(t, 75, snap.Score) // 50 +10 cheap P/E +15 strong ROE
	assert.Equal(t, models.RatingExcellent, snap.Rating)
	assert.Equal(t, 0, secondary.calls, "secondary must not be consulted when primary has coverage")
}

func TestGetSnapshot_FallsBackToSecondary(t *testing.T) {
	primary := &mockFundamentalsClient{ratios: nil} // no coverage
	secondary := &mockFundamentalsClient{ratios: &models.FundamentalRatios{PERatio: 12, ROE: 18, Source: "FMP"}}

	svc := NewService(primary, secondary, nil)
	snap := svc.GetSnapshot(context.Background(), "AAPL")

	assert.Equal(t, "FMP", snap.Source)
	assert.Equal(t, 75, snap.Score)
	assert.Equal(t, models.RatingExcellent, snap.Rating)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestGetSnapshot_PrimaryErrorFallsBack(t *testing.T) {
	primary := &mockFundamentalsClient{err: errors.New("finnhub down")}
	secondary := &mockFundamentalsClient{ratios: &models.FundamentalRatios{NetMargin: 20, Source: "FMP"}}

	svc := NewService(primary, secondary, nil)
	snap := svc.GetSnapshot(context.Background(), "AAPL")

	assert.Equal(t, "FMP", snap.Source)
	assert.Equal(t, 60, snap.Score)
}

func TestGetSnapshot_NoCoverageKeepsBaseline(t *testing.T) {
	svc := NewService(&mockFundamentalsClient{}, &mockFundamentalsClient{}, nil)
	snap := svc.GetSnapshot(context.Background(), "ZZZZ")

	require.NotNil(t, snap)
	assert.Equal(t, 50, snap.Score)
	assert.Equal(t, models.RatingGood, snap.Rating)
	assert.Empty(t, snap.Metrics)
	assert.Empty(t, snap.Source)
}

func TestGetSnapshot_NilClients(t *testing.T) {
	svc := NewService(nil, nil, nil)
	snap := svc.GetSnapshot(context.Background(), "AAPL")

	require.NotNil(t, snap)
	assert.Equal(t, 50, snap.Score)
}
