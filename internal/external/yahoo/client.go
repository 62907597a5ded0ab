// Package yahoo implements the market-data provider on top of the
// public Yahoo Finance endpoints: the chart API for daily bars and the
// quoteSummary API for fundamentals.
package yahoo

import (
	"github.com/kvenkat/niftywatch/pkg/config"
	"github.com/kvenkat/niftywatch/pkg/httputil"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// Client handles communication with Yahoo Finance.
// SSOT: Yahoo API calls happen only in this package.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	chartRange string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient.
			WithUserAgent(cfg.Yahoo.UserAgent).
			WithRateLimit(cfg.Yahoo.RequestsPerSecond),
		logger:     log.WithField("module", "yahoo"),
		baseURL:    cfg.Yahoo.BaseURL,
		chartRange: cfg.Yahoo.ChartRange,
	}
}
