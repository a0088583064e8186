package murmur_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/murmur"
)

func TestNormal(t *testing.T) {
	ts, err := murmur.Normal(0, 1, murmur.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, murmur.SampleRate, ts.Len())
	assert.InDelta(t, 1.0/murmur.SampleRate, ts.DeltaT, 0)
	assert.InDelta(t, -131.2403866327384, ts.Samples[0], 1e-9)
}

func TestNormalErrors(t *testing.T) {
	_, err := murmur.Normal(5, 5, murmur.DefaultOptions())
	require.ErrorIs(t, err, murmur.ErrInvalidRange)

	_, err = murmur.Normal(0, 1, murmur.Options{Seed: -1})
	require.ErrorIs(t, err, murmur.ErrInvalidSeed)
}

func TestNoiseFromString(t *testing.T) {
	opts := murmur.Options{Seed: 3, LowFrequencyCutoff: 10}

	a, err := murmur.NoiseFromString("AdvLIGOModel", 0, 2, opts)
	require.NoError(t, err)
	require.Equal(t, 2*murmur.SampleRate, a.Len())

	spectrum, err := murmur.PSD("AdvLIGOModel", 10)
	require.NoError(t, err)

	opts.LowFrequencyCutoff = 1

	b, err := murmur.ColoredNoise(spectrum, 0, 2, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Samples, b.Samples)
	assert.Greater(t, stat.StdDev(a.Samples, nil), 0.0)
}

func TestColoredRangeErrors(t *testing.T) {
	_, err := murmur.NoiseFromString("AdvLIGOModel", 4, 0, murmur.DefaultOptions())
	require.ErrorIs(t, err, murmur.ErrInvalidRange)

	spectrum, err := murmur.PSD("flat", 0)
	require.NoError(t, err)

	_, err = murmur.ColoredNoise(spectrum, 7, 7, murmur.DefaultOptions())
	require.ErrorIs(t, err, murmur.ErrInvalidRange)
}

func TestNoiseFromStringUnknown(t *testing.T) {
	_, err := murmur.NoiseFromString("nope", 0, 1, murmur.DefaultOptions())
	require.ErrorIs(t, err, murmur.ErrUnknownModel)
}

func TestPSD(t *testing.T) {
	spectrum, err := murmur.PSD("flat", 0)
	require.NoError(t, err)

	assert.Equal(t, murmur.SampleRate*murmur.FilterLength/2+1, spectrum.Len())
	assert.InDelta(t, 1.0/murmur.FilterLength, spectrum.DeltaF, 0)
	assert.Contains(t, murmur.PSDNames(), "flat")
}

func TestReadPSD(t *testing.T) {
	spectrum, err := murmur.ReadPSD(strings.NewReader("1 4\n8192 4\n"), true, 1)
	require.NoError(t, err)

	assert.Equal(t, murmur.SampleRate*murmur.FilterLength/2+1, spectrum.Len())
	assert.Zero(t, spectrum.Values[0])
	assert.InEpsilon(t, 16.0, spectrum.Values[1000], 1e-9)

	_, err = murmur.ReadPSD(strings.NewReader("garbage"), false, 1)
	require.ErrorIs(t, err, murmur.ErrInvalidText)
}

func TestEstimatePSD(t *testing.T) {
	ts, err := murmur.Normal(0, 32, murmur.Options{Seed: 11})
	require.NoError(t, err)

	measured, err := murmur.EstimatePSD(ts, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, measured.DeltaF, 1e-12)

	flat, err := murmur.PSD("flat", 0)
	require.NoError(t, err)

	ratio, err := murmur.MatchPSD(measured, flat, 10, 8000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ratio, 0.1)

	_, err = murmur.EstimatePSD(ts, 64)
	require.Error(t, err)
}
