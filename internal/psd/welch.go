package psd

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/murmur/internal/types"
)

// WelchOptions configures Welch.
type WelchOptions struct {
	SegmentSize int // samples per segment, default 4 s at the series rate
	SegmentsMax int // max segments to average; 0 = all (default 100)
}

// DefaultWelchOptions returns 4 s segments, averaging at most 100 of them.
func DefaultWelchOptions() WelchOptions {
	return WelchOptions{
		SegmentsMax: 100,
	}
}

// Welch estimates the one-sided PSD of ts by averaging Hann-windowed periodograms of segments
// overlapping by half. White noise of variance fs/2 comes out at 1.
func Welch(ts *types.TimeSeries, opts WelchOptions) (*types.FrequencySeries, error) {
	size := opts.SegmentSize
	if size == 0 {
		size = int(math.Round(4 * ts.SampleRate()))
	}

	if size < 2 || size > ts.Len() {
		return nil, fmt.Errorf("%w: segment of %d samples for a %d sample series", ErrInvalidGrid, size, ts.Len())
	}

	hop := size / 2

	win := make([]float64, size)
	for i := range win {
		win[i] = 1
	}

	win = window.Hann(win)

	var power float64
	for _, w := range win {
		power += w * w
	}

	// 2 for the folded negative frequencies, over fs * sum(w^2) for the window.
	scale := 2 * ts.DeltaT / power

	fft := fourier.NewFFT(size)
	segment := make([]float64, size)
	sum := make([]float64, size/2+1)
	segments := 0

	for pos := 0; pos+size <= ts.Len(); pos += hop {
		if opts.SegmentsMax > 0 && segments >= opts.SegmentsMax {
			break
		}

		for i := range segment {
			segment[i] = ts.Samples[pos+i] * win[i]
		}

		for k, c := range fft.Coefficients(nil, segment) {
			sum[k] += real(c)*real(c) + imag(c)*imag(c)
		}

		segments++
	}

	out := &types.FrequencySeries{Values: sum, DeltaF: 1 / (float64(size) * ts.DeltaT)}

	for k := range out.Values {
		out.Values[k] *= scale / float64(segments)
	}

	// DC and (for even sizes) Nyquist have no negative-frequency twin.
	out.Values[0] /= 2
	if size%2 == 0 {
		out.Values[len(out.Values)-1] /= 2
	}

	return out, nil
}

// MedianRatio is the median of estimate/target over the bins of estimate in [fLow, fHigh]. target is
// resampled onto the estimate's resolution first.
func MedianRatio(estimate, target *types.FrequencySeries, fLow, fHigh float64) (float64, error) {
	resampled, err := Interpolate(target, estimate.DeltaF)
	if err != nil {
		return 0, err
	}

	var ratios []float64

	for k := int(math.Ceil(fLow / estimate.DeltaF)); k < min(estimate.Len(), resampled.Len()); k++ {
		if estimate.Frequency(k) > fHigh {
			break
		}

		if resampled.Values[k] > 0 {
			ratios = append(ratios, estimate.Values[k]/resampled.Values[k])
		}
	}

	if len(ratios) == 0 {
		return 0, fmt.Errorf("%w: no bins with power in [%v, %v] Hz", ErrInvalidGrid, fLow, fHigh)
	}

	slices.Sort(ratios)

	return stat.Quantile(0.5, stat.Empirical, ratios, nil), nil
}
