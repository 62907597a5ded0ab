// Package screener drives the per-ticker screening pipeline:
// fetch -> indicators -> classification -> report tables.
package screener

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/pkg/logger"
)

// MarketDataProvider supplies fundamentals and price history per ticker.
// "Not found" conditions surface as absent fundamentals or an empty
// series, not as an error; errors mean the transport itself failed.
type MarketDataProvider interface {
	GetBundle(ctx context.Context, ticker string) (contracts.Fundamentals, contracts.PriceSeries, error)
}

// ChartRenderer renders a price/SMA chart for a ticker on request.
type ChartRenderer interface {
	Render(ticker string, frame *contracts.IndicatorFrame) error
}

// Screener runs the screening pipeline over an ordered ticker list.
// Tickers are processed strictly sequentially; the pacer enforces a
// minimum interval between upstream fetches so the data provider's rate
// limits are respected deterministically.
type Screener struct {
	provider MarketDataProvider
	charts   ChartRenderer
	logger   *logger.Logger
	pacer    *rate.Limiter
}

// New creates a Screener. charts may be nil when no plotting is wanted.
// fetchInterval is the minimum time between upstream fetches; zero
// disables pacing (useful in tests).
func New(provider MarketDataProvider, charts ChartRenderer, log *logger.Logger, fetchInterval time.Duration) *Screener {
	var pacer *rate.Limiter
	if fetchInterval > 0 {
		pacer = rate.NewLimiter(rate.Every(fetchInterval), 1)
		// The limiter starts with a token; drain it so the delay also
		// separates the first and second fetch.
		pacer.Allow()
	}

	return &Screener{
		provider: provider,
		charts:   charts,
		logger:   log.WithField("module", "screener"),
		pacer:    pacer,
	}
}

// Screen fetches, computes and classifies each ticker in input order and
// returns the full table plus the filtered shortlist. Per-ticker
// failures are logged and skipped; only option validation and context
// cancellation abort the batch. An empty result is not an error.
func (s *Screener) Screen(ctx context.Context, tickers []string, opts Options) (*contracts.ScreenResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalized()

	started := time.Now()
	full := make([]contracts.ScreenRow, 0, len(tickers))
	skipped := make(map[SkipReason]int)

	for _, ticker := range tickers {
		fund, series, err := s.provider.GetBundle(ctx, ticker)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.logger.WithError(err).WithField("ticker", ticker).Warn("Fetch failed, skipping ticker")
			skipped["fetch_error"]++
			continue
		}

		// Rate limit protection: pace after every successful fetch.
		if err := s.pace(ctx); err != nil {
			return nil, err
		}

		row, frame, skip := ComputeRow(ticker, fund, series)
		if skip != SkipNone {
			s.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"reason": string(skip),
				"bars":   len(series),
			}).Debug("Ticker excluded")
			skipped[skip]++
			continue
		}

		if opts.PlotTickers[ticker] && s.charts != nil {
			if err := s.charts.Render(ticker, frame); err != nil {
				// A failed chart never costs the ticker its row.
				s.logger.WithError(err).WithField("ticker", ticker).Warn("Chart render failed")
			}
		}

		full = append(full, row)
	}

	result := &contracts.ScreenResult{
		Full:     full,
		Filtered: Filter(full, opts),
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"screened":  len(result.Full),
		"filtered":  len(result.Filtered),
		"skipped":   skipped,
		"duration":  time.Since(started),
	}).Info("Screening completed")

	return result, nil
}

func (s *Screener) pace(ctx context.Context) error {
	if s.pacer == nil {
		return nil
	}
	if err := s.pacer.Wait(ctx); err != nil {
		return err
	}
	return nil
}
