package murmur

import (
	"io"
	"math"

	"github.com/farcloser/murmur/internal/noise/color"
	"github.com/farcloser/murmur/internal/noise/white"
	"github.com/farcloser/murmur/internal/psd"
)

/*
Usage:

// Ten seconds of white noise, realization 42
ts, err := murmur.Normal(1e9, 1e9+10, murmur.Options{Seed: 42})

// The same stretch colored by an analytic detector model
ts, err := murmur.NoiseFromString("AdvLIGOModel", 1e9, 1e9+10, murmur.Options{Seed: 42, LowFrequencyCutoff: 10})

// Colored by a PSD read from a two-column text file
opts := murmur.DefaultOptions()
spectrum, err := murmur.ReadPSD(file, false, opts.LowFrequencyCutoff)
ts, err := murmur.ColoredNoise(spectrum, 1e9, 1e9+10, opts)

Any call with the same seed and range returns the same samples, whatever the machine, the
concurrency, or the calls made before it.
*/

// modelBins is the size of the grid analytic models are evaluated on: 1/FilterLength Hz up to Nyquist.
const modelBins = SampleRate*FilterLength/2 + 1

// Normal returns white Gaussian noise over [start, end) with variance SampleRate/2 (unit one-sided PSD).
func Normal(start, end float64, opts Options) (*TimeSeries, error) {
	return white.Normal(start, end, opts.white())
}

// ColoredNoise returns Gaussian noise over [start, end) whose one-sided PSD is spectrum.
// spectrum is left untouched.
func ColoredNoise(spectrum *FrequencySeries, start, end float64, opts Options) (*TimeSeries, error) {
	return color.Colored(spectrum, start, end, opts.color())
}

// NoiseFromString colors noise with the analytic model called name (see PSDNames).
// The model is zero below opts.LowFrequencyCutoff; the coloring filter itself always uses a 1 Hz cutoff.
func NoiseFromString(name string, start, end float64, opts Options) (*TimeSeries, error) {
	spectrum, err := PSD(name, opts.LowFrequencyCutoff)
	if err != nil {
		return nil, err
	}

	colorOpts := opts
	colorOpts.LowFrequencyCutoff = 1

	return ColoredNoise(spectrum, start, end, colorOpts)
}

// PSD evaluates the analytic model called name at 1/FilterLength Hz resolution up to Nyquist.
func PSD(name string, lowFrequencyCutoff float64) (*FrequencySeries, error) {
	return psd.FromString(name, modelBins, 1.0/FilterLength, lowFrequencyCutoff)
}

// PSDNames lists the analytic models known to NoiseFromString.
func PSDNames() []string {
	return psd.Models()
}

// ReadPSD reads a two-column "frequency value" table onto the same grid as PSD. Set asd when the
// values are amplitude spectral densities.
func ReadPSD(r io.Reader, asd bool, lowFrequencyCutoff float64) (*FrequencySeries, error) {
	return psd.ReadText(r, modelBins, 1.0/FilterLength, lowFrequencyCutoff, asd)
}

// EstimatePSD measures the one-sided PSD of ts with Welch's method over segments of segmentDuration
// seconds (0 = 4 s), averaging at most 100 of them.
func EstimatePSD(ts *TimeSeries, segmentDuration float64) (*FrequencySeries, error) {
	opts := psd.DefaultWelchOptions()
	opts.SegmentSize = int(math.Round(segmentDuration / ts.DeltaT))

	return psd.Welch(ts, opts)
}

// MatchPSD is the median ratio of measured to target over [fLow, fHigh] Hz: 1 when the series follows target.
func MatchPSD(measured, target *FrequencySeries, fLow, fHigh float64) (float64, error) {
	return psd.MedianRatio(measured, target, fLow, fHigh)
}
