package murmur

import (
	"github.com/farcloser/murmur/internal/noise/color"
	"github.com/farcloser/murmur/internal/noise/shared"
	"github.com/farcloser/murmur/internal/noise/white"
	"github.com/farcloser/murmur/internal/psd"
	"github.com/farcloser/murmur/internal/types"
)

// Every realization depends on these. They are not configurable.
const (
	SampleRate    = shared.SampleRate    // Hz
	BlockDuration = shared.BlockDuration // seconds
	FilterLength  = shared.FilterLength  // seconds
)

type (
	// TimeSeries holds generated samples, their spacing and their epoch (GPS seconds).
	TimeSeries = types.TimeSeries
	// FrequencySeries holds a one-sided PSD starting at 0 Hz.
	FrequencySeries = types.FrequencySeries
)

var (
	ErrInvalidRange       = white.ErrInvalidRange
	ErrInvalidSeed        = white.ErrInvalidSeed
	ErrResolutionMismatch = color.ErrResolutionMismatch
	ErrNonFinite          = color.ErrNonFinite
	ErrInterpolation      = psd.ErrInterpolation
	ErrUnknownModel       = psd.ErrUnknownModel
	ErrInvalidText        = psd.ErrInvalidText
)

// Options configures noise generation.
type Options struct {
	// Seed selects the realization, in [0, 2^32). Equal seeds and ranges give identical samples.
	Seed int64

	// Unseeded makes every call produce a fresh, non-reproducible realization. Seed is ignored.
	Unseeded bool

	// LowFrequencyCutoff in Hz below which the coloring filter has no content (default: 1).
	// For NoiseFromString it also zeroes the analytic model below this frequency.
	LowFrequencyCutoff float64

	// Concurrency bounds parallel block generation (default: GOMAXPROCS). It never changes the output.
	Concurrency int
}

// DefaultOptions returns seed 0 and a 1 Hz low frequency cutoff.
func DefaultOptions() Options {
	return Options{
		Seed:               0,
		LowFrequencyCutoff: 1,
	}
}

func (o Options) white() white.Options {
	return white.Options{
		Seed:        o.Seed,
		Unseeded:    o.Unseeded,
		Concurrency: o.Concurrency,
	}
}

func (o Options) color() color.Options {
	return color.Options{
		Options:            o.white(),
		LowFrequencyCutoff: o.LowFrequencyCutoff,
	}
}
