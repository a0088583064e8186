package block

import (
	"math"

	"github.com/farcloser/murmur/internal/noise/shared"
	"github.com/farcloser/murmur/internal/rng"
)

const (
	keySpace = 1 << 32
	variance = shared.SampleRate / 2
)

// Key reduces a block key into the 32-bit seed space with floor modulo, so negative keys wrap upward.
func Key(key int64) uint32 {
	m := key % keySpace
	if m < 0 {
		m += keySpace
	}

	return uint32(m) //nolint:gosec // m is in [0, 2^32)
}

// Generate returns one block of white Gaussian noise for key.
func Generate(key int64) []float64 {
	out := make([]float64, shared.BlockSamples)
	Fill(out, key)

	return out
}

// Fill writes the first len(dst) samples of block key into dst. Prefixes of a block are stable:
// filling a shorter dst yields the leading samples of the full block.
func Fill(dst []float64, key int64) {
	gen := rng.New(Key(key))
	scale := math.Sqrt(variance)

	for i := range dst {
		dst[i] = gen.Normal(0, scale)
	}
}
