package indicator

import "math"

// VolumeSpikes flags bars whose volume exceeds factor times the trailing
// average volume. The window includes the current bar in its own average.
// Warm-up bars are never spikes.
func VolumeSpikes(volumes []float64, window int, factor float64) []bool {
	out := make([]bool, len(volumes))

	mean := SMA(volumes, window)
	for i, v := range volumes {
		if math.IsNaN(mean[i]) {
			continue
		}
		out[i] = v > factor*mean[i]
	}

	return out
}
