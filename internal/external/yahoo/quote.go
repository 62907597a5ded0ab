package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

// rawValue is Yahoo's number wrapper: {"raw": 27.53, "fmt": "27.53"}.
// Absent metrics arrive as an empty object, so Raw stays nil.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// quoteSummaryResponse is the shape of the quoteSummary API response,
// trimmed to the two modules the screener needs.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE rawValue `json:"trailingPE"`
			} `json:"summaryDetail"`
			FinancialData struct {
				ReturnOnEquity rawValue `json:"returnOnEquity"`
			} `json:"financialData"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFundamentals fetches trailing PE and ROE for a ticker. Metrics
// Yahoo does not report come back absent (nil), never defaulted; an
// unknown symbol yields fully absent fundamentals rather than an error.
func (c *Client) FetchFundamentals(ctx context.Context, ticker string) (contracts.Fundamentals, error) {
	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=summaryDetail,financialData",
		c.baseURL, url.PathEscape(ticker))

	var summary quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &summary); err != nil {
		return contracts.Fundamentals{}, fmt.Errorf("quote summary fetch failed: %w", err)
	}

	if summary.QuoteSummary.Error != nil || len(summary.QuoteSummary.Result) == 0 {
		c.logger.WithField("ticker", ticker).Debug("No fundamentals available")
		return contracts.Fundamentals{}, nil
	}

	result := summary.QuoteSummary.Result[0]
	fund := contracts.Fundamentals{
		TrailingPE:     result.SummaryDetail.TrailingPE.Raw,
		ReturnOnEquity: result.FinancialData.ReturnOnEquity.Raw,
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"complete": fund.Complete(),
	}).Debug("Fetched fundamentals")

	return fund, nil
}
