package color

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/farcloser/murmur/internal/noise/shared"
	"github.com/farcloser/murmur/internal/noise/white"
	"github.com/farcloser/murmur/internal/psd"
	"github.com/farcloser/murmur/internal/types"
)

var (
	ErrResolutionMismatch = errors.New("psd resolution does not match the noise segment")
	ErrNonFinite          = errors.New("non-finite spectrum")
)

// Options configures coloring. Seed, Unseeded and Concurrency are passed to the white noise composer.
type Options struct {
	white.Options

	// LowFrequencyCutoff in Hz; filter content below it is suppressed (default: 1).
	LowFrequencyCutoff float64
}

// DefaultOptions returns seed 0 with a 1 Hz low frequency cutoff.
func DefaultOptions() Options {
	return Options{LowFrequencyCutoff: 1}
}

// Colored returns noise over [start, end) whose one-sided PSD follows target.
//
// White noise is generated over the range padded by the filter length on both sides, colored in the
// frequency domain by the square root of target (after the inverse filter has been truncated to the
// filter length), and sliced back to [start, end). target is not modified.
func Colored(target *types.FrequencySeries, start, end float64, opts Options) (*types.TimeSeries, error) {
	// Padding would turn an empty or reversed range into a valid one.
	if _, _, err := white.BlockRange(start, end); err != nil {
		return nil, err
	}

	if err := validate(target); err != nil {
		return nil, err
	}

	noise, err := white.Normal(start-shared.FilterLength, end+shared.FilterLength, opts.Options)
	if err != nil {
		return nil, err
	}

	n := noise.Len()

	bins := int(math.Floor(shared.SampleRate/target.DeltaF))/2 + 1

	spectrum, err := psd.Interpolate(target.Resize(bins), 1/noise.Duration())
	if err != nil {
		return nil, err
	}

	// An odd segment (a range that is not a whole number of samples long) resamples to one bin too many.
	if spectrum.Len() != n/2+1 {
		return nil, fmt.Errorf("%w: %d bins at %v Hz for a %d sample segment",
			ErrResolutionMismatch, spectrum.Len(), spectrum.DeltaF, n)
	}

	inverse := spectrum.Clone()
	for k, v := range inverse.Values {
		inverse.Values[k] = 1 / v
	}

	filter, err := psd.InverseSpectrumTruncation(
		inverse,
		shared.FilterLength*shared.SampleRate,
		opts.LowFrequencyCutoff,
		psd.TruncHann,
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("coloring noise",
		"start", start, "end", end, "segment_samples", n, "delta_f", spectrum.DeltaF,
		"low_frequency_cutoff", opts.LowFrequencyCutoff)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, noise.Samples)

	for k, v := range filter.Values {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: filter bin %d (%v Hz) is NaN", ErrNonFinite, k, filter.Frequency(k))
		}

		// Bins the filter cannot realize come back as +Inf and are silenced.
		gain := 1 / math.Sqrt(v)
		coeffs[k] = complex(real(coeffs[k])*gain, imag(coeffs[k])*gain)
	}

	samples := fft.Sequence(nil, coeffs)
	for i := range samples {
		samples[i] /= float64(n)
	}

	colored := &types.TimeSeries{
		Samples: samples,
		DeltaT:  noise.DeltaT,
		Epoch:   noise.Epoch,
	}

	out, err := colored.TimeSlice(start, end)
	if err != nil {
		return nil, fmt.Errorf("slicing colored noise: %w", err)
	}

	return out, nil
}

// validate rejects spectra that can only produce a degenerate filter. Zero bins are allowed, as long
// as at least one bin carries power.
func validate(target *types.FrequencySeries) error {
	if target.DeltaF <= 0 || math.IsNaN(target.DeltaF) || math.IsInf(target.DeltaF, 0) {
		return fmt.Errorf("%w: invalid psd resolution %v", psd.ErrInterpolation, target.DeltaF)
	}

	positive := false

	for k, v := range target.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: psd bin %d is %v", ErrNonFinite, k, v)
		}

		positive = positive || v > 0
	}

	if !positive {
		return fmt.Errorf("%w: psd has no power", ErrNonFinite)
	}

	return nil
}
