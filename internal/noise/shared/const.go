package shared

// These are part of every realization: changing any of them changes every sample ever generated.
const (
	SampleRate    = 16384 // Hz
	BlockDuration = 100   // seconds per block
	FilterLength  = 128   // seconds of coloring filter support, also the padding on each side

	BlockSamples = SampleRate * BlockDuration
)
