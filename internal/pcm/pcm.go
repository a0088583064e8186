// Package pcm exports time series samples as raw little-endian PCM.
package pcm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/murmur/internal/types"
)

var ErrUnsupportedDepth = errors.New("unsupported bit depth")

const (
	MaxValue16 = 32768.0      // 2^15, 16-bit signed full scale
	MaxValue24 = 8388608.0    // 2^23, 24-bit signed full scale
	MaxValue32 = 2147483648.0 // 2^31, 32-bit signed full scale
)

// Spec names the sample layout in ffmpeg terms (f64le, s16le, s24le, s32le).
func Spec(depth types.BitDepth) (string, error) {
	switch depth {
	case types.Depth64Float:
		return "f64le", nil
	case types.Depth16, types.Depth24, types.Depth32:
		//nolint:gosec // bit depths are small constants
		return "s" + strconv.Itoa(int(depth)) + "le", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
}

// Write encodes samples to w.
//
// Depth64Float writes the float64 values untouched. Integer depths normalize by the absolute peak so
// that the loudest sample lands one step below full scale; an all-zero series stays zero.
func Write(w io.Writer, samples []float64, depth types.BitDepth) error {
	var fullScale float64

	switch depth {
	case types.Depth64Float:
	case types.Depth16:
		fullScale = MaxValue16
	case types.Depth24:
		fullScale = MaxValue24
	case types.Depth32:
		fullScale = MaxValue32
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	buf := bufio.NewWriter(w)

	if depth == types.Depth64Float {
		var frame [8]byte

		for _, v := range samples {
			binary.LittleEndian.PutUint64(frame[:], math.Float64bits(v))

			if _, err := buf.Write(frame[:]); err != nil {
				return err
			}
		}

		return buf.Flush()
	}

	scale := 0.0
	if len(samples) > 0 {
		if peak := math.Max(floats.Max(samples), -floats.Min(samples)); peak > 0 {
			scale = (fullScale - 1) / peak
		}
	}

	width := int(depth / 8) //nolint:gosec // 2, 3 or 4
	frame := make([]byte, 4)

	for _, v := range samples {
		//nolint:gosec // bounded by fullScale-1
		binary.LittleEndian.PutUint32(frame, uint32(int32(math.Round(v*scale))))

		if _, err := buf.Write(frame[:width]); err != nil {
			return err
		}
	}

	return buf.Flush()
}
