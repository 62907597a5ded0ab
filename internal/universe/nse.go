// Package universe maintains the ordered list of tickers to screen:
// fetched from the NSE index archives, persisted to a local CSV, and
// refreshed on demand.
package universe

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kvenkat/niftywatch/pkg/config"
	"github.com/kvenkat/niftywatch/pkg/httputil"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// Client fetches index constituents from NSE.
// SSOT: constituent-list fetches happen only in this package.
type Client struct {
	httpClient  *httputil.Client
	logger      *logger.Logger
	csvURL      string
	fallbackURL string
}

// NewClient creates a new constituents client.
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      log.WithField("module", "universe"),
		csvURL:      cfg.NSE.ConstituentsURL,
		fallbackURL: cfg.NSE.FallbackURL,
	}
}

// FetchConstituents returns the NIFTY 50 tickers in index order, each
// suffixed with ".NS" for the Yahoo symbol namespace. The NSE archives
// CSV is the primary source; when it is unreachable the constituents
// are scraped from the fallback HTML page.
func (c *Client) FetchConstituents(ctx context.Context) ([]string, error) {
	tickers, err := c.fetchCSV(ctx)
	if err == nil {
		return tickers, nil
	}

	c.logger.WithError(err).Warn("Constituents CSV fetch failed, trying fallback")

	tickers, ferr := c.fetchFallback(ctx)
	if ferr != nil {
		return nil, fmt.Errorf("constituents fetch failed: %w (fallback: %v)", err, ferr)
	}
	return tickers, nil
}

// fetchCSV downloads and parses the NSE archives constituent list.
func (c *Client) fetchCSV(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, c.csvURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tickers, err := parseConstituentsCSV(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(tickers)).Info("Fetched index constituents")
	return tickers, nil
}

// parseConstituentsCSV extracts the Symbol column from the NSE list
// (header: Company Name, Industry, Symbol, Series, ISIN Code).
func parseConstituentsCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse constituents CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("constituents CSV has no data rows")
	}

	symbolCol := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "Symbol") {
			symbolCol = i
			break
		}
	}
	if symbolCol < 0 {
		return nil, fmt.Errorf("constituents CSV missing Symbol column")
	}

	tickers := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if symbolCol >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[symbolCol]))
		if symbol == "" {
			continue
		}
		tickers = append(tickers, symbol+".NS")
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("constituents CSV yielded no symbols")
	}
	return tickers, nil
}
