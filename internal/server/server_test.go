package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bobmcallan/stockscope/internal/app"
	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/models"
	"github.com/bobmcallan/stockscope/internal/services/analysis"
	"github.com/bobmcallan/stockscope/internal/services/technical"
)

type mockAnalysisService struct {
	result *models.AnalysisResult
	err    error
}

func (m *mockAnalysisService) Analyze(ctx context.Context, ticker, capital string) (*models.AnalysisResult, error) {
	return m.result, m.err
}

func testServer(svc *mockAnalysisService) *Server {
	a := &app.App{
		Config:          common.NewDefaultConfig(),
		Logger:          common.NewSilentLogger(),
		AnalysisService: svc,
		StartupTime:     time.Now(),
	}
	return NewServer(a)
}

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		ID:          "test-id",
		Ticker:      "AAPL",
		GeneratedAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		Technical: &models.TechnicalSnapshot{
			Price: 189.50, Currency: "USD", ChangePct: 1.25,
			SMA20: 185.1, SMA50: 180.4, RSI14: 62.3,
			Low52Week: 150.2, High52Week: 199.6,
			Source: "Tradier (real-time)",
		},
		Fundamentals: &models.FundamentalsSnapshot{Score: 75, Rating: models.RatingExcellent},
		RSIStatus:    "Neutral",
		RSISignal:    models.SignalWarn,
		Trend:        "Uptrend (Golden Cross)",
		TrendSignal:  models.SignalGood,
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(&mockAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if _, ok := body["providers"]; !ok {
		t.Error("health payload missing providers")
	}
}

func TestAnalyzeAPI(t *testing.T) {
	srv := testServer(&mockAnalysisService{result: sampleResult()})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"ticker":"AAPL","capital":"1000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Ticker != "AAPL" || result.Fundamentals.Score != 75 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAnalyzeAPI_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty ticker", analysis.ErrEmptyTicker, http.StatusBadRequest},
		{"bad capital", common.ErrInvalidCapital, http.StatusBadRequest},
		{"unknown ticker", technical.ErrNoPriceData, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(&mockAnalysisService{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"ticker":"X"}`))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAnalyzeAPI_MethodNotAllowed(t *testing.T) {
	srv := testServer(&mockAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestIndexPage(t *testing.T) {
	srv := testServer(&mockAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="ticker"`) || !strings.Contains(body, `name="capital"`) {
		t.Error("index page missing the analysis form")
	}
}

func TestIndexPage_UnknownPath(t *testing.T) {
	srv := testServer(&mockAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAnalyzeForm(t *testing.T) {
	srv := testServer(&mockAnalysisService{result: sampleResult()})

	form := strings.NewReader("ticker=AAPL&capital=1000")
	req := httptest.NewRequest(http.MethodPost, "/analyze", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"AAPL", "189.50", "Uptrend (Golden Cross)", "score 75/100"} {
		if !strings.Contains(body, want) {
			t.Errorf("result page missing %q", want)
		}
	}
}

func TestAnalyzeForm_ErrorRendersInPage(t *testing.T) {
	srv := testServer(&mockAnalysisService{err: technical.ErrNoPriceData})

	form := strings.NewReader("ticker=ZZZZ")
	req := httptest.NewRequest(http.MethodPost, "/analyze", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error rendered in page)", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no price data available") {
		t.Error("error message not rendered in page")
	}
}
