// Package handlers implements the HTTP API handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/internal/screener"
	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// ScreenHandler handles screening API endpoints
// SSOT: screening over HTTP goes through this handler only
type ScreenHandler struct {
	screener *screener.Screener
	universe *universe.Service
	logger   *logger.Logger
}

// NewScreenHandler creates a new screening handler
func NewScreenHandler(s *screener.Screener, u *universe.Service, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		screener: s,
		universe: u,
		logger:   log,
	}
}

// ScreenRequest represents a screening request. Absent thresholds fall
// back to the defaults; Tickers overrides the stored universe.
type ScreenRequest struct {
	MaxPE        *float64 `json:"max_pe"`
	MinROE       *float64 `json:"min_roe"`
	SignalFilter string   `json:"signal_filter"`
	SortBy       string   `json:"sort_by"`
	Plot         []string `json:"plot"`
	Tickers      []string `json:"tickers"`
}

// Options converts the request into screener options.
func (req *ScreenRequest) Options() screener.Options {
	opts := screener.DefaultOptions()
	if req.MaxPE != nil {
		opts.MaxPE = *req.MaxPE
	}
	if req.MinROE != nil {
		opts.MinROE = *req.MinROE
	}
	if req.SignalFilter != "" {
		opts.SignalFilter = contracts.SignalFilter(req.SignalFilter)
	}
	if req.SortBy != "" {
		opts.SortBy = contracts.SortKey(req.SortBy)
	}
	for _, ticker := range req.Plot {
		opts.PlotTickers[ticker] = true
	}
	return opts
}

// Run executes a screening pass over the universe
// POST /api/screen
func (h *ScreenHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScreenRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	tickers := req.Tickers
	if len(tickers) == 0 {
		var err error
		tickers, err = h.universe.Tickers(ctx)
		if err != nil {
			h.logger.WithError(err).Error("Failed to load universe")
			respondError(w, http.StatusBadGateway, "Failed to load ticker universe")
			return
		}
	}

	result, err := h.screener.Screen(ctx, tickers, req.Options())
	if err != nil {
		var verr screener.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Error())
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respondError(w, http.StatusGatewayTimeout, "Screening aborted")
			return
		}
		h.logger.WithError(err).Error("Screening failed")
		respondError(w, http.StatusInternalServerError, "Screening failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
