package psd

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/farcloser/murmur/internal/types"
)

var (
	ErrUnknownModel = errors.New("unknown analytic psd")
	ErrInvalidGrid  = errors.New("invalid frequency grid")
)

// model is a one-sided PSD fit in strain^2/Hz, zero below its seismic wall.
type model struct {
	wall float64 // Hz
	eval func(f float64) float64
}

/*
Analytic Noise Models

Fits from Sathyaprakash & Schutz, "Physics, Astrophysics and Cosmology with
Gravitational Waves", Living Rev. Relativity 12 (2009), Table 1, with x = f/f0.

| Name         | f0 (Hz) | S0 (1/Hz) | Wall (Hz) | Shape                                               |
|--------------|---------|-----------|-----------|-----------------------------------------------------|
| iLIGOModel   | 150     | 9e-46     | 40        | (4.49x)^-56 + 0.16x^-4.52 + 0.52 + 0.32x^2          |
| AdvLIGOModel | 215     | 1e-49     | 20        | x^-4.14 - 5x^-2 + 111(1 - x^2 + x^4/2)/(1 + x^2/2)  |
| Virgo        | 500     | 10.2e-46  | 20        | (7.87x)^-4.8 + 6/17 x^-1 + 1 + x^2                  |
| GEO          | 150     | 1e-46     | 40        | (3.4x)^-30 + 34x^-1 + 20(1 - x^2 + x^4/2)/(1+x^2/2) |
| TAMA         | 400     | 7.5e-46   | 75        | x^-5 + 13x^-1 + 9(1 + x^2)                          |
| flat         | -       | 1         | 0         | 1 (white noise of variance fs/2 has this PSD)       |
*/

//nolint:gochecknoglobals // configuration data, effectively const
var models = map[string]model{
	"iLIGOModel": {wall: 40, eval: func(f float64) float64 {
		x := f / 150

		return 9e-46 * (math.Pow(4.49*x, -56) + 0.16*math.Pow(x, -4.52) + 0.52 + 0.32*x*x)
	}},
	"AdvLIGOModel": {wall: 20, eval: func(f float64) float64 {
		x := f / 215
		x2 := x * x

		return 1e-49 * (math.Pow(x, -4.14) - 5/x2 + 111*(1-x2+0.5*x2*x2)/(1+0.5*x2))
	}},
	"Virgo": {wall: 20, eval: func(f float64) float64 {
		x := f / 500

		return 10.2e-46 * (math.Pow(7.87*x, -4.8) + 6.0/17.0/x + 1 + x*x)
	}},
	"GEO": {wall: 40, eval: func(f float64) float64 {
		x := f / 150
		x2 := x * x

		return 1e-46 * (math.Pow(3.4*x, -30) + 34/x + 20*(1-x2+0.5*x2*x2)/(1+0.5*x2))
	}},
	"TAMA": {wall: 75, eval: func(f float64) float64 {
		x := f / 400

		return 7.5e-46 * (math.Pow(x, -5) + 13/x + 9*(1+x*x))
	}},
	"flat": {wall: 0, eval: func(float64) float64 {
		return 1
	}},
}

// Models returns the names accepted by FromString, sorted.
func Models() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// FromString evaluates the named analytic model on length bins spaced deltaF apart. Bins below
// lowCut, and below the model's own seismic wall, are zero.
func FromString(name string, length int, deltaF, lowCut float64) (*types.FrequencySeries, error) {
	m, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownModel, name, Models())
	}

	if length < 1 || deltaF <= 0 {
		return nil, fmt.Errorf("%w: %d bins of %v Hz", ErrInvalidGrid, length, deltaF)
	}

	out := &types.FrequencySeries{Values: make([]float64, length), DeltaF: deltaF}
	kmin := max(int(lowCut/deltaF), 0)

	for k := kmin; k < length; k++ {
		f := float64(k) * deltaF
		if f < m.wall {
			continue
		}

		out.Values[k] = m.eval(f)
	}

	return out, nil
}
