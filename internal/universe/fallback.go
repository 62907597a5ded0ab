package universe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchFallback scrapes the constituents table from the fallback HTML
// page (the NIFTY 50 Wikipedia article carries a wikitable with a
// Symbol column).
func (c *Client) fetchFallback(ctx context.Context) ([]string, error) {
	resp, err := c.httpClient.Get(ctx, c.fallbackURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse fallback HTML: %w", err)
	}

	tickers := parseConstituentsTable(doc)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("fallback page yielded no symbols")
	}

	c.logger.WithField("count", len(tickers)).Info("Fetched index constituents from fallback")
	return tickers, nil
}

// parseConstituentsTable walks every table, locates the one with a
// Symbol header and collects that column.
func parseConstituentsTable(doc *goquery.Document) []string {
	var tickers []string

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		symbolCol := -1
		table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
			if strings.EqualFold(strings.TrimSpace(th.Text()), "Symbol") {
				symbolCol = i
			}
		})
		if symbolCol < 0 {
			return true // keep looking
		}

		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			cell := tr.Find("td").Eq(symbolCol)
			symbol := strings.ToUpper(strings.TrimSpace(cell.Text()))
			if symbol == "" {
				return
			}
			if !strings.HasSuffix(symbol, ".NS") {
				symbol += ".NS"
			}
			tickers = append(tickers, symbol)
		})
		return false
	})

	return tickers
}
