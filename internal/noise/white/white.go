package white

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/farcloser/murmur/internal/noise/block"
	"github.com/farcloser/murmur/internal/noise/shared"
	"github.com/farcloser/murmur/internal/rng"
	"github.com/farcloser/murmur/internal/types"
)

var (
	ErrInvalidRange = errors.New("invalid time range")
	ErrInvalidSeed  = errors.New("seed must be between 0 and 2**32 - 1")
)

// saltBound is the magnitude of the per-call salt; salts are drawn from [-saltBound, saltBound).
const saltBound = int64(1) << 50

// Options configures white noise composition.
type Options struct {
	// Seed selects the realization. Must fit in 32 unsigned bits.
	Seed int64

	// Unseeded draws the salt from system entropy; Seed is ignored and the output is not reproducible.
	Unseeded bool

	// Concurrency bounds the number of blocks generated in parallel (default: GOMAXPROCS).
	Concurrency int
}

// BlockRange returns the inclusive range of block indices covering [start, end).
// When end falls exactly on a block boundary, the block starting there is excluded.
func BlockRange(start, end float64) (first, last int64, err error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return 0, 0, fmt.Errorf("%w: non-finite bounds [%v, %v)", ErrInvalidRange, start, end)
	}

	if end <= start {
		return 0, 0, fmt.Errorf("%w: end %v is not after start %v", ErrInvalidRange, end, start)
	}

	first = int64(math.Floor(start / shared.BlockDuration))
	last = int64(math.Floor(end / shared.BlockDuration))

	if math.Mod(end, shared.BlockDuration) == 0 {
		last--
	}

	if last < first {
		return 0, 0, fmt.Errorf("%w: no block covers [%v, %v)", ErrInvalidRange, start, end)
	}

	return first, last, nil
}

// Salt is the offset added to every block index of a realization.
func Salt(seed uint32) int64 {
	return rng.New(seed).Int64Range(-saltBound, saltBound)
}

func entropySalt() (int64, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}

	keys := make([]uint32, len(buf)/4)
	for i := range keys {
		keys[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}

	return rng.NewFromKeys(keys).Int64Range(-saltBound, saltBound), nil
}

func resolveSalt(opts Options) (int64, error) {
	if opts.Unseeded {
		return entropySalt()
	}

	if opts.Seed < 0 || opts.Seed > math.MaxUint32 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSeed, opts.Seed)
	}

	return Salt(uint32(opts.Seed)), nil //nolint:gosec // range checked above
}

// Normal returns white Gaussian noise covering [start, end).
//
// The samples are the concatenation of the blocks returned by BlockRange, keyed by index plus
// the seed's salt. The series is labelled with epoch start and sliced from its first sample, so
// shifting a range by whole blocks yields the same samples.
func Normal(start, end float64, opts Options) (*types.TimeSeries, error) {
	first, last, err := BlockRange(start, end)
	if err != nil {
		return nil, err
	}

	salt, err := resolveSalt(opts)
	if err != nil {
		return nil, err
	}

	count := last - first + 1
	data := make([]float64, count*shared.BlockSamples)

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	slog.Debug("generating white noise",
		"start", start, "end", end, "first_block", first, "last_block", last, "workers", limit)

	var group errgroup.Group
	group.SetLimit(limit)

	for i := range count {
		dst := data[i*shared.BlockSamples : (i+1)*shared.BlockSamples]
		key := first + i + salt

		group.Go(func() error {
			block.Fill(dst, key)

			return nil
		})
	}

	if err = group.Wait(); err != nil {
		return nil, err
	}

	series := &types.TimeSeries{
		Samples: data,
		DeltaT:  1.0 / shared.SampleRate,
		Epoch:   start,
	}

	out, err := series.TimeSlice(start, end)
	if err != nil {
		return nil, fmt.Errorf("slicing white noise: %w", err)
	}

	return out, nil
}
