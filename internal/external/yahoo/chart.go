package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

// chartResponse is the shape of the Yahoo chart API response. OHLCV
// columns arrive as interface{} because closed-market days carry nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars fetches the daily price history for a ticker. An
// unknown symbol yields an empty series, not an error.
func (c *Client) FetchDailyBars(ctx context.Context, ticker string) (contracts.PriceSeries, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(ticker), c.chartRange)

	var chart chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &chart); err != nil {
		return nil, fmt.Errorf("chart fetch failed: %w", err)
	}

	if chart.Chart.Error != nil {
		// Symbol-level problems ("No data found" etc.) are a data gap,
		// not a transport failure.
		c.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"code":   chart.Chart.Error.Code,
		}).Debug("Chart API returned no data")
		return nil, nil
	}

	series := parseChart(&chart)

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(series),
	}).Debug("Fetched daily bars")

	return series, nil
}

// parseChart converts a chart response into a PriceSeries. Null bars
// (holidays, halts) are dropped; output is chronologically sorted.
func parseChart(chart *chartResponse) contracts.PriceSeries {
	if len(chart.Chart.Result) == 0 {
		return nil
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil
	}

	quote := result.Indicators.Quote[0]
	series := make(contracts.PriceSeries, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(at(quote.Open, i))
		h := toFloat(at(quote.High, i))
		l := toFloat(at(quote.Low, i))
		cl := toFloat(at(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue
		}

		series = append(series, contracts.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      o,
			High:      h,
			Low:       l,
			Close:     cl,
			Volume:    toFloat(at(quote.Volume, i)),
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	return series
}

func at(column []interface{}, i int) interface{} {
	if i >= len(column) {
		return nil
	}
	return column[i]
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
