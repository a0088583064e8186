package color_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/murmur/internal/noise/color"
	"github.com/farcloser/murmur/internal/noise/shared"
	"github.com/farcloser/murmur/internal/noise/white"
	"github.com/farcloser/murmur/internal/psd"
	"github.com/farcloser/murmur/internal/types"
)

// A 4 s request pads to 260 s, which keeps the transform sizes cheap.
const start, end = 0.0, 4.0

func flatPSD(value, deltaF float64) *types.FrequencySeries {
	bins := int(shared.SampleRate/deltaF)/2 + 1
	fs := &types.FrequencySeries{Values: make([]float64, bins), DeltaF: deltaF}

	for i := range fs.Values {
		fs.Values[i] = value
	}

	return fs
}

func TestColoredFlatReproducesWhiteNoise(t *testing.T) {
	target := flatPSD(1, 1)

	out, err := color.Colored(target, start, end, color.Options{Options: white.Options{Seed: 5}, LowFrequencyCutoff: 1})
	require.NoError(t, err)

	plain, err := white.Normal(start, end, white.Options{Seed: 5})
	require.NoError(t, err)
	require.Equal(t, plain.Len(), out.Len(), "colored and white noise over the same range have the same length")
	assert.InDelta(t, start, out.Epoch, 1e-9)

	// The padded segment is exactly 2*FilterLength longer; with a unit PSD the filter is (almost) the identity,
	// so the colored samples track the matching stretch of the padded white noise.
	padded, err := white.Normal(start-shared.FilterLength, end+shared.FilterLength, white.Options{Seed: 5})
	require.NoError(t, err)
	require.Equal(t, plain.Len()+2*shared.FilterLength*shared.SampleRate, padded.Len())

	inner, err := padded.TimeSlice(start, end)
	require.NoError(t, err)

	assert.Greater(t, stat.Correlation(out.Samples, inner.Samples, nil), 0.99)

	variance := stat.Variance(out.Samples, nil)
	assert.InEpsilon(t, float64(shared.SampleRate/2), variance, 0.05)

	for _, v := range target.Values {
		require.InDelta(t, 1.0, v, 0, "target must not be modified")
	}
}

func TestColoredUnitVariance(t *testing.T) {
	out, err := color.Colored(flatPSD(2.0/shared.SampleRate, 1), start, end, color.DefaultOptions())
	require.NoError(t, err)

	assert.InEpsilon(t, 1.0, stat.Variance(out.Samples, nil), 0.05)
}

func TestColoredIsDeterministic(t *testing.T) {
	target, err := psd.FromString("AdvLIGOModel", shared.FilterLength*shared.SampleRate/2+1, 1.0/shared.FilterLength, 10)
	require.NoError(t, err)

	opts := color.Options{Options: white.Options{Seed: 77}, LowFrequencyCutoff: 1}

	a, err := color.Colored(target, start, end, opts)
	require.NoError(t, err)

	opts.Concurrency = 1

	b, err := color.Colored(target, start, end, opts)
	require.NoError(t, err)

	require.Equal(t, a.Samples, b.Samples)

	estimate, err := psd.Welch(a, psd.WelchOptions{SegmentSize: shared.SampleRate})
	require.NoError(t, err)

	ratio, err := psd.MedianRatio(estimate, target, 20, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ratio, 0.2, "colored noise follows the target PSD")

	std := stat.StdDev(a.Samples, nil)
	assert.False(t, math.IsNaN(std))
	assert.Greater(t, std, 1e-25)
	assert.Less(t, std, 1e-19)
}

func TestColoredDegenerateSpectra(t *testing.T) {
	zero := flatPSD(0, 1)

	_, err := color.Colored(zero, start, end, color.DefaultOptions())
	require.ErrorIs(t, err, color.ErrNonFinite)

	for _, bad := range []float64{math.NaN(), math.Inf(1), -1} {
		target := flatPSD(1, 1)
		target.Values[100] = bad

		_, err = color.Colored(target, start, end, color.DefaultOptions())
		require.ErrorIs(t, err, color.ErrNonFinite, "bin value %v", bad)
	}

	_, err = color.Colored(&types.FrequencySeries{Values: []float64{1, 1}}, start, end, color.DefaultOptions())
	require.ErrorIs(t, err, psd.ErrInterpolation)
}

func TestColoredResolutionMismatch(t *testing.T) {
	// 3 Hz bins cannot reach Nyquist exactly, so the resampled PSD misses the segment's last bins.
	_, err := color.Colored(flatPSD(1, 3), start, end, color.DefaultOptions())
	require.ErrorIs(t, err, color.ErrResolutionMismatch)
}

func TestColoredInvalidRange(t *testing.T) {
	for _, r := range [][2]float64{{end, start}, {5, 5}, {start, start}, {math.NaN(), end}, {start, math.Inf(1)}} {
		out, err := color.Colored(flatPSD(1, 1), r[0], r[1], color.DefaultOptions())
		require.ErrorIs(t, err, white.ErrInvalidRange, "range [%v, %v)", r[0], r[1])
		require.Nil(t, out)
	}
}

func TestColoredOddSegment(t *testing.T) {
	// A single sample pads to 256 s plus one sample, which has no matching half spectrum.
	_, err := color.Colored(flatPSD(1, 1), start, start+1.0/shared.SampleRate, color.DefaultOptions())
	require.ErrorIs(t, err, color.ErrResolutionMismatch)
}
