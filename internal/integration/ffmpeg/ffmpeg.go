package ffmpeg

import "time"

const (
	name = "ffmpeg"
	// Encoding a few hours of audio to flac on a slow machine.
	timeout = 5 * time.Minute
)
