package contracts

import "math"

// IndicatorFrame is a PriceSeries annotated with derived indicator
// columns, aligned one-to-one with the input bars. Values inside the
// warm-up window are NaN, set explicitly by the indicator engine.
type IndicatorFrame struct {
	Series      PriceSeries
	RSI         []float64
	SMA20       []float64
	VolumeSpike []bool
}

// Len returns the number of bars in the frame.
func (f *IndicatorFrame) Len() int {
	return len(f.Series)
}

// LatestRSI returns the RSI of the most recent bar, NaN if undefined.
func (f *IndicatorFrame) LatestRSI() float64 {
	if len(f.RSI) == 0 {
		return math.NaN()
	}
	return f.RSI[len(f.RSI)-1]
}

// LatestSMA20 returns the SMA20 of the most recent bar, NaN if undefined.
func (f *IndicatorFrame) LatestSMA20() float64 {
	if len(f.SMA20) == 0 {
		return math.NaN()
	}
	return f.SMA20[len(f.SMA20)-1]
}

// LatestVolumeSpike reports whether the most recent bar is a volume spike.
func (f *IndicatorFrame) LatestVolumeSpike() bool {
	if len(f.VolumeSpike) == 0 {
		return false
	}
	return f.VolumeSpike[len(f.VolumeSpike)-1]
}

// LatestComplete reports whether the most recent bar has both RSI and
// SMA20 defined. Series shorter than the warm-up window never qualify.
func (f *IndicatorFrame) LatestComplete() bool {
	return !math.IsNaN(f.LatestRSI()) && !math.IsNaN(f.LatestSMA20())
}
