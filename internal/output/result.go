// Package output provides shared result serialization for murmur output.
package output

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/murmur/internal/types"
)

// SeriesToMap converts a generated series into the canonical map structure
// used for console, JSON and markdown output.
func SeriesToMap(ts *types.TimeSeries) map[string]any {
	meta := map[string]any{
		"epoch":       ts.Epoch,
		"end":         ts.EndTime(),
		"duration":    ts.Duration(),
		"delta_t":     ts.DeltaT,
		"sample_rate": ts.SampleRate(),
		"samples":     ts.Len(),
	}

	if ts.Len() == 0 {
		return meta
	}

	mean, std := stat.MeanStdDev(ts.Samples, nil)

	meta["mean"] = mean
	meta["stddev"] = std
	meta["rms"] = math.Sqrt(floats.Dot(ts.Samples, ts.Samples) / float64(ts.Len()))
	meta["min"] = floats.Min(ts.Samples)
	meta["max"] = floats.Max(ts.Samples)

	return meta
}

// SpectrumToMap summarizes a PSD: its grid and the band where it carries power.
func SpectrumToMap(fs *types.FrequencySeries) map[string]any {
	meta := map[string]any{
		"delta_f": fs.DeltaF,
		"bins":    fs.Len(),
		"f_max":   fs.Frequency(max(fs.Len()-1, 0)),
	}

	first, last := -1, -1

	for k, v := range fs.Values {
		if v > 0 {
			if first < 0 {
				first = k
			}

			last = k
		}
	}

	if first >= 0 {
		meta["f_low"] = fs.Frequency(first)
		meta["f_high"] = fs.Frequency(last)
		meta["min_value"] = floats.Min(fs.Values[first : last+1])
		meta["max_value"] = floats.Max(fs.Values[first : last+1])
	}

	return meta
}
