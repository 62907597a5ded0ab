package handlers

import (
	"net/http"
	"time"

	"github.com/kvenkat/niftywatch/internal/universe"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// UniverseHandler handles ticker-universe API endpoints
type UniverseHandler struct {
	universe *universe.Service
	logger   *logger.Logger
}

// NewUniverseHandler creates a new universe handler
func NewUniverseHandler(u *universe.Service, log *logger.Logger) *UniverseHandler {
	return &UniverseHandler{
		universe: u,
		logger:   log,
	}
}

// universeResponse is the payload for both universe endpoints.
type universeResponse struct {
	Tickers   []string   `json:"tickers"`
	Count     int        `json:"count"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Get returns the current ticker universe
// GET /api/universe
func (h *UniverseHandler) Get(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.universe.Tickers(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load universe")
		respondError(w, http.StatusBadGateway, "Failed to load ticker universe")
		return
	}

	respondJSON(w, http.StatusOK, h.response(tickers))
}

// Refresh re-fetches the constituents and overwrites the stored list
// POST /api/universe/refresh
func (h *UniverseHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.universe.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to refresh universe")
		respondError(w, http.StatusBadGateway, "Failed to refresh ticker universe")
		return
	}

	respondJSON(w, http.StatusOK, h.response(tickers))
}

func (h *UniverseHandler) response(tickers []string) universeResponse {
	resp := universeResponse{
		Tickers: tickers,
		Count:   len(tickers),
	}
	if mtime := h.universe.Store().ModTime(); !mtime.IsZero() {
		resp.UpdatedAt = &mtime
	}
	return resp
}
