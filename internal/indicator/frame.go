// Package indicator derives technical indicator columns from a daily
// price/volume series. All functions are pure: insufficient history
// produces NaN (or false for booleans), never an error.
package indicator

import (
	"math"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

const (
	// RSIWindow is the trailing window of the relative strength index.
	RSIWindow = 14

	// SMAWindow is the trailing window of the close moving average.
	SMAWindow = 20

	// VolumeWindow is the trailing window of the volume moving average.
	VolumeWindow = 20

	// VolumeSpikeFactor flags a bar whose volume exceeds this multiple
	// of its trailing average.
	VolumeSpikeFactor = 1.5
)

// BuildFrame computes all indicator columns for a series. The returned
// frame is aligned one-to-one with the input bars.
func BuildFrame(series contracts.PriceSeries) *contracts.IndicatorFrame {
	closes := series.Closes()

	return &contracts.IndicatorFrame{
		Series:      series,
		RSI:         RSI(closes, RSIWindow),
		SMA20:       SMA(closes, SMAWindow),
		VolumeSpike: VolumeSpikes(series.Volumes(), VolumeWindow, VolumeSpikeFactor),
	}
}

// nanSlice returns a slice of n NaN values.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
