package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrSliceBounds is returned when a time slice falls outside of a series.
var ErrSliceBounds = errors.New("time slice outside of series")

// indexTolerance is how close (in samples) a fractional index must be to an integer to snap onto it.
const indexTolerance = 1e-3

// BitDepth of exported PCM. Depth64Float is IEEE-754 double, verbatim.
type BitDepth uint

const (
	Depth64Float BitDepth = 0
	Depth16      BitDepth = 16
	Depth24      BitDepth = 24
	Depth32      BitDepth = 32
)

// PCMFormat describes an exported sample stream.
type PCMFormat struct {
	SampleRate int
	BitDepth   BitDepth
	Channels   uint
}

// TimeSeries is a regularly sampled real sequence anchored at an absolute epoch (GPS seconds).
type TimeSeries struct {
	Samples []float64
	DeltaT  float64 // seconds between samples
	Epoch   float64 // time of Samples[0]
}

// Len returns the number of samples.
func (ts *TimeSeries) Len() int {
	return len(ts.Samples)
}

// SampleRate is 1/DeltaT.
func (ts *TimeSeries) SampleRate() float64 {
	return 1 / ts.DeltaT
}

// Duration in seconds.
func (ts *TimeSeries) Duration() float64 {
	return float64(len(ts.Samples)) * ts.DeltaT
}

// EndTime is the exclusive end of the series.
func (ts *TimeSeries) EndTime() float64 {
	return ts.Epoch + ts.Duration()
}

// TimeSlice returns the samples covering [start, end). The returned series shares storage with ts.
//
// Fractional indices within a thousandth of a sample from an integer snap onto it; anything else is
// truncated, so a slice never reaches past the data it was asked for.
func (ts *TimeSeries) TimeSlice(start, end float64) (*TimeSeries, error) {
	if start < ts.Epoch {
		return nil, fmt.Errorf("%w: start %v before series start %v", ErrSliceBounds, start, ts.Epoch)
	}

	if end > ts.EndTime() {
		return nil, fmt.Errorf("%w: end %v after series end %v", ErrSliceBounds, end, ts.EndTime())
	}

	if end < start {
		return nil, fmt.Errorf("%w: end %v before start %v", ErrSliceBounds, end, start)
	}

	rate := ts.SampleRate()
	startIdx := sampleIndex((start - ts.Epoch) * rate)
	endIdx := min(sampleIndex((end-ts.Epoch)*rate), len(ts.Samples))

	return &TimeSeries{
		Samples: ts.Samples[startIdx:endIdx],
		DeltaT:  ts.DeltaT,
		Epoch:   ts.Epoch + float64(startIdx)*ts.DeltaT,
	}, nil
}

func sampleIndex(x float64) int {
	if r := math.Round(x); math.Abs(x-r) <= indexTolerance {
		return int(r)
	}

	return int(math.Floor(x))
}

// FrequencySeries is a one-sided spectrum sampled every DeltaF hertz starting at 0 Hz.
type FrequencySeries struct {
	Values []float64
	DeltaF float64
}

// Len returns the number of frequency bins.
func (fs *FrequencySeries) Len() int {
	return len(fs.Values)
}

// Frequency of bin k.
func (fs *FrequencySeries) Frequency(k int) float64 {
	return float64(k) * fs.DeltaF
}

// Frequencies of all bins.
func (fs *FrequencySeries) Frequencies() []float64 {
	freqs := make([]float64, len(fs.Values))
	for k := range freqs {
		freqs[k] = fs.Frequency(k)
	}

	return freqs
}

// Clone returns a deep copy.
func (fs *FrequencySeries) Clone() *FrequencySeries {
	values := make([]float64, len(fs.Values))
	copy(values, fs.Values)

	return &FrequencySeries{Values: values, DeltaF: fs.DeltaF}
}

// Resize returns a copy holding exactly n bins, zero-padded or truncated at the high end.
func (fs *FrequencySeries) Resize(n int) *FrequencySeries {
	values := make([]float64, n)
	copy(values, fs.Values)

	return &FrequencySeries{Values: values, DeltaF: fs.DeltaF}
}
