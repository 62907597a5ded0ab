package signalrule

import (
	"math"
	"testing"

	"github.com/kvenkat/niftywatch/internal/contracts"
)

func TestClassify(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name  string
		rsi   float64
		close float64
		sma20 float64
		want  contracts.Signal
	}{
		{"oversold above sma", 25, 105, 100, contracts.SignalBuy},
		{"overbought below sma", 75, 95, 100, contracts.SignalSell},
		{"neutral", 50, 100, 100, contracts.SignalHold},
		{"oversold below sma", 25, 95, 100, contracts.SignalHold},
		{"overbought above sma", 75, 105, 100, contracts.SignalHold},
		{"rsi at buy boundary", 30, 105, 100, contracts.SignalHold},
		{"rsi at sell boundary", 70, 95, 100, contracts.SignalHold},
		{"close equal to sma", 25, 100, 100, contracts.SignalHold},
		{"undefined rsi", nan, 105, 100, contracts.SignalHold},
		{"undefined sma", 25, 105, nan, contracts.SignalHold},
		{"both undefined", nan, 100, nan, contracts.SignalHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rsi, tt.close, tt.sma20); got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %v, want %v",
					tt.rsi, tt.close, tt.sma20, got, tt.want)
			}
		})
	}
}

func TestClassifyFrame_Empty(t *testing.T) {
	if got := ClassifyFrame(&contracts.IndicatorFrame{}); got != contracts.SignalHold {
		t.Errorf("ClassifyFrame(empty) = %v, want Hold", got)
	}
}
