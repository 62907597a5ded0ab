package indicator

import "math"

// RSI computes the relative strength index per bar using trailing simple
// averages of gains and losses (the rolling-mean variant, not Wilder
// smoothing).
//
// A bar needs `window` preceding close-to-close deltas, so the first
// defined value sits at index `window`. Two edge cases are set
// explicitly rather than left to float arithmetic:
//   - avgLoss == 0 with avgGain > 0: RSI = 100 (RS -> infinity)
//   - avgLoss == avgGain == 0 (flat window): RSI = NaN (0/0)
func RSI(closes []float64, window int) []float64 {
	out := nanSlice(len(closes))
	if window <= 0 {
		return out
	}

	for t := window; t < len(closes); t++ {
		var gainSum, lossSum float64
		for i := t - window + 1; i <= t; i++ {
			delta := closes[i] - closes[i-1]
			if delta > 0 {
				gainSum += delta
			} else {
				lossSum -= delta
			}
		}

		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)

		switch {
		case avgLoss > 0:
			rs := avgGain / avgLoss
			out[t] = 100 - 100/(1+rs)
		case avgGain > 0:
			out[t] = 100
		default:
			out[t] = math.NaN()
		}
	}

	return out
}
