package contracts

import "time"

// PricePoint represents one daily trading bar.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// PriceSeries is a chronological sequence of bars for one ticker.
// Timestamps are strictly increasing; duplicate days are a provider bug.
type PriceSeries []PricePoint

// Closes returns the close column.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Volumes returns the volume column.
func (s PriceSeries) Volumes() []float64 {
	volumes := make([]float64, len(s))
	for i, bar := range s {
		volumes[i] = bar.Volume
	}
	return volumes
}

// Last returns the most recent bar. ok is false for an empty series.
func (s PriceSeries) Last() (PricePoint, bool) {
	if len(s) == 0 {
		return PricePoint{}, false
	}
	return s[len(s)-1], true
}

// IsChronological reports whether timestamps are strictly increasing.
func (s PriceSeries) IsChronological() bool {
	for i := 1; i < len(s); i++ {
		if !s[i].Timestamp.After(s[i-1].Timestamp) {
			return false
		}
	}
	return true
}
