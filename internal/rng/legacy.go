// Package rng reproduces the legacy numpy RandomState stream on top of an MT19937 core.
//
// Realizations produced with this package are bit-identical to those produced by
// numpy.random.RandomState(seed) for the methods exposed here: random_sample,
// standard_normal/normal (polar method, cached second variate) and the masked
// bounded integer draw used by randint for ranges wider than 32 bits.
package rng

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/mathext/prng"
)

// Legacy is a numpy-compatible generator. It is not safe for concurrent use.
type Legacy struct {
	mt       *prng.MT19937
	gauss    float64
	hasGauss bool
}

// New returns a generator seeded like RandomState(seed).
func New(seed uint32) *Legacy {
	mt := prng.NewMT19937()
	mt.Seed(uint64(seed))

	return &Legacy{mt: mt}
}

// NewFromKeys returns a generator seeded by array, like RandomState(keys).
func NewFromKeys(keys []uint32) *Legacy {
	mt := prng.NewMT19937()
	mt.SeedFromKeys(keys)

	return &Legacy{mt: mt}
}

// Uint32 returns the next raw 32-bit output.
func (l *Legacy) Uint32() uint32 {
	return l.mt.Uint32()
}

// Uint64 returns two consecutive outputs, first in the high word.
func (l *Legacy) Uint64() uint64 {
	return l.mt.Uint64()
}

// Float64 returns a 53-bit uniform value in [0, 1).
func (l *Legacy) Float64() float64 {
	a := l.mt.Uint32() >> 5
	b := l.mt.Uint32() >> 6

	return (float64(a)*67108864.0 + float64(b)) / 9007199254740992.0
}

// NormFloat64 returns a standard normal variate using the Marsaglia polar method.
// Variates come in pairs; the second of each pair is returned by the following call.
func (l *Legacy) NormFloat64() float64 {
	if l.hasGauss {
		l.hasGauss = false

		return l.gauss
	}

	var x1, x2, r2 float64

	for {
		x1 = 2.0*l.Float64() - 1.0
		x2 = 2.0*l.Float64() - 1.0
		r2 = x1*x1 + x2*x2

		if r2 < 1.0 && r2 != 0.0 {
			break
		}
	}

	f := math.Sqrt(-2.0 * math.Log(r2) / r2)
	l.gauss = f * x1
	l.hasGauss = true

	return f * x2
}

// Normal returns loc + scale*NormFloat64().
func (l *Legacy) Normal(loc, scale float64) float64 {
	return loc + scale*l.NormFloat64()
}

// Int64Range returns a value in the half-open range [low, high), drawn like RandomState.randint(low, high)
// for spans that do not fit in 32 bits. It panics if high <= low.
func (l *Legacy) Int64Range(low, high int64) int64 {
	if high <= low {
		panic("rng: invalid range")
	}

	span := uint64(high-1) - uint64(low) //nolint:gosec // two's complement difference is the intended span

	return low + int64(l.bounded(span)) //nolint:gosec // bounded by span
}

// bounded draws in [0, span] by masking to the smallest covering power of two and rejecting overshoots.
func (l *Legacy) bounded(span uint64) uint64 {
	if span == 0 {
		return 0
	}

	if span <= math.MaxUint32 {
		mask := uint32(1)<<(32-bits.LeadingZeros32(uint32(span))) - 1
		for {
			if v := l.mt.Uint32() & mask; v <= uint32(span) {
				return uint64(v)
			}
		}
	}

	mask := uint64(math.MaxUint64) >> bits.LeadingZeros64(span)

	for {
		if v := l.mt.Uint64() & mask; v <= span {
			return v
		}
	}
}
