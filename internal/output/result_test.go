package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farcloser/murmur/internal/output"
	"github.com/farcloser/murmur/internal/types"
)

func TestSeriesToMap(t *testing.T) {
	meta := output.SeriesToMap(&types.TimeSeries{
		Samples: []float64{1, -1, 3, -3},
		DeltaT:  0.5,
		Epoch:   10,
	})

	assert.Equal(t, 4, meta["samples"])
	assert.InDelta(t, 10.0, meta["epoch"], 0)
	assert.InDelta(t, 12.0, meta["end"], 0)
	assert.InDelta(t, 2.0, meta["duration"], 0)
	assert.InDelta(t, 2.0, meta["sample_rate"], 0)
	assert.InDelta(t, 0.0, meta["mean"], 1e-15)
	assert.InDelta(t, 2.5819888974716112, meta["stddev"], 1e-12)
	assert.InDelta(t, 2.23606797749979, meta["rms"], 1e-12)
	assert.InDelta(t, -3.0, meta["min"], 0)
	assert.InDelta(t, 3.0, meta["max"], 0)
}

func TestSeriesToMapEmpty(t *testing.T) {
	meta := output.SeriesToMap(&types.TimeSeries{DeltaT: 1})

	assert.Equal(t, 0, meta["samples"])
	assert.NotContains(t, meta, "mean")
}

func TestSpectrumToMap(t *testing.T) {
	meta := output.SpectrumToMap(&types.FrequencySeries{Values: []float64{0, 0, 4, 2, 0}, DeltaF: 0.5})

	assert.Equal(t, 5, meta["bins"])
	assert.InDelta(t, 2.0, meta["f_max"], 0)
	assert.InDelta(t, 1.0, meta["f_low"], 0)
	assert.InDelta(t, 1.5, meta["f_high"], 0)
	assert.InDelta(t, 2.0, meta["min_value"], 0)
	assert.InDelta(t, 4.0, meta["max_value"], 0)

	assert.NotContains(t, output.SpectrumToMap(&types.FrequencySeries{Values: []float64{0}, DeltaF: 1}), "f_low")
}
