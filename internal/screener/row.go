package screener

import (
	"math"

	"github.com/kvenkat/niftywatch/internal/contracts"
	"github.com/kvenkat/niftywatch/internal/indicator"
	"github.com/kvenkat/niftywatch/internal/signalrule"
)

// SkipReason explains why a ticker produced no row.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipMissingFundamentals SkipReason = "missing_fundamentals"
	SkipEmptySeries         SkipReason = "empty_series"
	SkipInsufficientHistory SkipReason = "insufficient_history"
)

// ComputeRow is the pure numeric core of the screener: it turns one
// ticker's fundamentals and price series into a ScreenRow, or a skip
// reason when the ticker does not qualify. The indicator frame is
// returned alongside so the caller can hand it to a chart renderer.
func ComputeRow(ticker string, fund contracts.Fundamentals, series contracts.PriceSeries) (contracts.ScreenRow, *contracts.IndicatorFrame, SkipReason) {
	if !fund.Complete() {
		return contracts.ScreenRow{}, nil, SkipMissingFundamentals
	}
	if len(series) == 0 {
		return contracts.ScreenRow{}, nil, SkipEmptySeries
	}

	frame := indicator.BuildFrame(series)
	if !frame.LatestComplete() {
		return contracts.ScreenRow{}, frame, SkipInsufficientHistory
	}

	row := contracts.ScreenRow{
		Ticker:           ticker,
		PERatio:          round2(*fund.TrailingPE),
		ROEPercent:       round2(*fund.ReturnOnEquity * 100),
		RSI:              round2(frame.LatestRSI()),
		VolumeSpikeToday: frame.LatestVolumeSpike(),
		Signal:           signalrule.ClassifyFrame(frame),
	}

	return row, frame, SkipNone
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
