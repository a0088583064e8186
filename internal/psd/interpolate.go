// Package psd provides the spectral services used to color noise: resampling a one-sided power
// spectral density onto a new frequency grid, bounding the time-domain support of its inverse, and
// evaluating analytic detector noise models.
package psd

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/farcloser/murmur/internal/types"
)

var ErrInterpolation = errors.New("cannot interpolate spectrum")

// Interpolate linearly resamples series onto a grid spaced deltaF apart. The new grid spans the
// same frequency range (rounded to the nearest bin); bins past the last input frequency hold the
// last input value.
func Interpolate(series *types.FrequencySeries, deltaF float64) (*types.FrequencySeries, error) {
	if deltaF <= 0 || math.IsNaN(deltaF) || math.IsInf(deltaF, 0) {
		return nil, fmt.Errorf("%w: invalid target resolution %v", ErrInterpolation, deltaF)
	}

	if series.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bins, got %d", ErrInterpolation, series.Len())
	}

	if series.DeltaF <= 0 || math.IsNaN(series.DeltaF) || math.IsInf(series.DeltaF, 0) {
		return nil, fmt.Errorf("%w: invalid source resolution %v", ErrInterpolation, series.DeltaF)
	}

	n := int(math.RoundToEven(float64(series.Len()-1)*series.DeltaF/deltaF + 1))

	var pl interp.PiecewiseLinear
	if err := pl.Fit(series.Frequencies(), series.Values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInterpolation, err)
	}

	out := &types.FrequencySeries{Values: make([]float64, n), DeltaF: deltaF}
	for k := range out.Values {
		out.Values[k] = pl.Predict(float64(k) * deltaF)
	}

	return out, nil
}
