// Package signalrule turns the latest indicator values of a ticker into
// a categorical trading signal.
package signalrule

import (
	"math"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

const (
	// Oversold is the RSI level below which a ticker may signal Buy.
	Oversold = 30

	// Overbought is the RSI level above which a ticker may signal Sell.
	Overbought = 70
)

// Classify applies the fixed three-way decision rule to the latest bar:
// Buy when RSI < 30 and close is above SMA20, Sell when RSI > 70 and
// close is below SMA20, Hold otherwise. Undefined (NaN) rsi or sma20
// always classifies as Hold. Stateless: no hysteresis, no memory of a
// prior signal.
func Classify(rsi, closePrice, sma20 float64) contracts.Signal {
	if math.IsNaN(rsi) || math.IsNaN(sma20) {
		return contracts.SignalHold
	}

	switch {
	case rsi < Oversold && closePrice > sma20:
		return contracts.SignalBuy
	case rsi > Overbought && closePrice < sma20:
		return contracts.SignalSell
	default:
		return contracts.SignalHold
	}
}

// ClassifyFrame classifies the most recent bar of an indicator frame.
// An empty frame is a Hold.
func ClassifyFrame(frame *contracts.IndicatorFrame) contracts.Signal {
	last, ok := frame.Series.Last()
	if !ok {
		return contracts.SignalHold
	}
	return Classify(frame.LatestRSI(), last.Close, frame.LatestSMA20())
}
