// Package app wires configuration, clients, and services into a ready
// application core shared by the CLI and the HTTP server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/stockscope/internal/clients/alphavantage"
	"github.com/bobmcallan/stockscope/internal/clients/claude"
	"github.com/bobmcallan/stockscope/internal/clients/finnhub"
	"github.com/bobmcallan/stockscope/internal/clients/fmp"
	"github.com/bobmcallan/stockscope/internal/clients/newsapi"
	"github.com/bobmcallan/stockscope/internal/clients/tradier"
	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/interfaces"
	"github.com/bobmcallan/stockscope/internal/services/analysis"
	"github.com/bobmcallan/stockscope/internal/services/fundamentals"
	"github.com/bobmcallan/stockscope/internal/services/narrative"
	"github.com/bobmcallan/stockscope/internal/services/news"
	"github.com/bobmcallan/stockscope/internal/services/technical"
)

// App holds the initialized configuration, clients, and services. It is
// the shared core used by cmd/stockscope and cmd/stockscope-server.
type App struct {
	Config *common.Config
	Logger *common.Logger

	TechnicalService    interfaces.TechnicalService
	FundamentalsService interfaces.FundamentalsService
	NewsService         interfaces.NewsService
	NarrativeService    interfaces.NarrativeService
	AnalysisService     interfaces.AnalysisService

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and constructs every configured client and
// service. Providers without an API key are skipped; their services
// degrade per their own rules. configPath may be empty, in which case
// STOCKSCOPE_CONFIG and the binary directory are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("STOCKSCOPE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "stockscope.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockscope.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	var quoteClient interfaces.QuoteClient
	if cfg := config.Clients.Tradier; cfg.APIKey != "" {
		quoteClient = tradier.NewClient(cfg.APIKey,
			tradier.WithBaseURL(cfg.BaseURL),
			tradier.WithLogger(logger),
			tradier.WithRateLimit(cfg.RateLimit),
			tradier.WithTimeout(cfg.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("Tradier API key not configured - real-time quotes will fall back to daily closes")
	}

	var (
		candleClient interfaces.CandleClient
		primaryFund  interfaces.FundamentalsClient
		primaryNews  interfaces.NewsClient
	)
	if cfg := config.Clients.Finnhub; cfg.APIKey != "" {
		client := finnhub.NewClient(cfg.APIKey,
			finnhub.WithBaseURL(cfg.BaseURL),
			finnhub.WithLogger(logger),
			finnhub.WithRateLimit(cfg.RateLimit),
			finnhub.WithTimeout(cfg.GetTimeout()),
		)
		candleClient = client
		primaryFund = client
		primaryNews = client
	} else {
		logger.Warn().Msg("Finnhub API key not configured - candles, fundamentals, and company news will be limited")
	}

	var backupClient interfaces.TechnicalBackupClient
	if cfg := config.Clients.AlphaVantage; cfg.APIKey != "" {
		backupClient = alphavantage.NewClient(cfg.APIKey,
			alphavantage.WithBaseURL(cfg.BaseURL),
			alphavantage.WithLogger(logger),
			alphavantage.WithRateLimit(cfg.RateLimit),
			alphavantage.WithTimeout(cfg.GetTimeout()),
		)
	}

	var secondaryFund interfaces.FundamentalsClient
	if cfg := config.Clients.FMP; cfg.APIKey != "" {
		secondaryFund = fmp.NewClient(cfg.APIKey,
			fmp.WithBaseURL(cfg.BaseURL),
			fmp.WithLogger(logger),
			fmp.WithRateLimit(cfg.RateLimit),
			fmp.WithTimeout(cfg.GetTimeout()),
		)
	}

	var secondaryNews interfaces.NewsClient
	if cfg := config.Clients.NewsAPI; cfg.APIKey != "" {
		secondaryNews = newsapi.NewClient(cfg.APIKey,
			newsapi.WithBaseURL(cfg.BaseURL),
			newsapi.WithLogger(logger),
			newsapi.WithRateLimit(cfg.RateLimit),
			newsapi.WithTimeout(cfg.GetTimeout()),
		)
	}

	var narrativeClient interfaces.NarrativeClient
	if cfg := config.Clients.Claude; cfg.APIKey != "" {
		narrativeClient = claude.NewClient(cfg.APIKey,
			claude.WithModel(cfg.Model),
			claude.WithMaxTokens(cfg.MaxTokens),
			claude.WithTimeout(cfg.GetTimeout()),
			claude.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("Anthropic API key not configured - AI narrative will be unavailable")
	}

	technicalService := technical.NewService(quoteClient, candleClient, backupClient, logger)
	fundamentalsService := fundamentals.NewService(primaryFund, secondaryFund, logger)
	newsService := news.NewService(primaryNews, secondaryNews, logger)
	narrativeService := narrative.NewService(narrativeClient, logger)
	analysisService := analysis.NewService(technicalService, fundamentalsService, newsService, narrativeService, logger)

	a := &App{
		Config:              config,
		Logger:              logger,
		TechnicalService:    technicalService,
		FundamentalsService: fundamentalsService,
		NewsService:         newsService,
		NarrativeService:    narrativeService,
		AnalysisService:     analysisService,
		StartupTime:         startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// ConfiguredProviders reports which providers have keys, for the CLI
// startup checklist and the health endpoint.
func (a *App) ConfiguredProviders() map[string]bool {
	c := a.Config.Clients
	return map[string]bool{
		"tradier":      c.Tradier.APIKey != "",
		"finnhub":      c.Finnhub.APIKey != "",
		"alphavantage": c.AlphaVantage.APIKey != "",
		"fmp":          c.FMP.APIKey != "",
		"newsapi":      c.NewsAPI.APIKey != "",
		"claude":       c.Claude.APIKey != "",
	}
}
