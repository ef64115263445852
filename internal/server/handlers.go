package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bobmcallan/stockscope/internal/common"
	"github.com/bobmcallan/stockscope/internal/services/analysis"
	"github.com/bobmcallan/stockscope/internal/services/technical"
)

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   common.GetVersion(),
		"uptime":    time.Since(s.app.StartupTime).Round(time.Second).String(),
		"providers": s.app.ConfiguredProviders(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// analyzeRequest is the JSON body for POST /api/analyze.
type analyzeRequest struct {
	Ticker  string `json:"ticker"`
	Capital string `json:"capital"`
}

// handleAnalyzeAPI handles POST /api/analyze.
func (s *Server) handleAnalyzeAPI(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req analyzeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := s.app.AnalysisService.Analyze(r.Context(), req.Ticker, req.Capital)
	if err != nil {
		WriteError(w, analyzeStatusCode(err), err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// analyzeStatusCode maps analysis failures to HTTP status codes:
// bad input is the caller's fault, an unknown ticker is a lookup miss.
func analyzeStatusCode(err error) int {
	switch {
	case errors.Is(err, analysis.ErrEmptyTicker), errors.Is(err, common.ErrInvalidCapital):
		return http.StatusBadRequest
	case errors.Is(err, technical.ErrNoPriceData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
