package psd

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/farcloser/murmur/internal/types"
)

var ErrFilterLength = errors.New("invalid filter length for spectrum truncation")

// TruncMethod selects how the edges of the truncated time-domain filter are tapered.
type TruncMethod int

const (
	TruncHann TruncMethod = iota // taper with the halves of a Hann window
	TruncNone                    // hard cut
)

func (m TruncMethod) String() string {
	switch m {
	case TruncHann:
		return "hann"
	case TruncNone:
		return "none"
	}

	return "unknown"
}

// InverseSpectrumTruncation bounds the time-domain support of the inverse amplitude spectrum of p to
// maxFilterLen samples, and returns the power spectrum that filter actually realizes, inverted.
//
// With p the input spectrum, the inverse ASD 1/sqrt(p) (DC, Nyquist, and bins below lowCut zeroed)
// is taken to the time domain, everything past maxFilterLen/2 samples from either end is zeroed
// (edges tapered according to method), and the result brought back: the returned value at bin k is
// 1/|X[k]|^2 where X is the transform of the truncated filter. A filter that already fits within
// maxFilterLen samples comes back as p on every bin that was kept.
func InverseSpectrumTruncation(
	p *types.FrequencySeries,
	maxFilterLen int,
	lowCut float64,
	method TruncMethod,
) (*types.FrequencySeries, error) {
	if p.Len() < 2 {
		return nil, fmt.Errorf("%w: spectrum has %d bins", ErrFilterLength, p.Len())
	}

	n := (p.Len() - 1) * 2
	half := maxFilterLen / 2
	truncStart := half
	truncEnd := n - half

	if maxFilterLen < 2 || truncEnd < truncStart {
		return nil, fmt.Errorf("%w: %d samples for a %d sample segment", ErrFilterLength, maxFilterLen, n)
	}

	invASD := make([]complex128, p.Len())
	for k, v := range p.Values {
		invASD[k] = complex(math.Sqrt(1/v), 0)
	}

	invASD[0] = 0
	invASD[n/2] = 0

	if lowCut > 0 {
		kmin := min(int(lowCut/p.DeltaF), len(invASD))
		clear(invASD[:kmin])
	}

	fft := fourier.NewFFT(n)

	q := fft.Sequence(nil, invASD)
	for i := range q {
		q[i] /= float64(n)
	}

	if method == TruncHann {
		taper := make([]float64, maxFilterLen)
		for i := range taper {
			taper[i] = 1
		}

		window.Hann(taper)

		for i := range truncStart {
			q[i] *= taper[maxFilterLen-truncStart+i]
		}

		for i := range half {
			q[truncEnd+i] *= taper[i]
		}
	}

	clear(q[truncStart:truncEnd])

	realized := fft.Coefficients(nil, q)

	out := &types.FrequencySeries{Values: make([]float64, p.Len()), DeltaF: p.DeltaF}
	for k, c := range realized {
		a := cmplx.Abs(c)
		out.Values[k] = 1 / (a * a)
	}

	return out, nil
}
