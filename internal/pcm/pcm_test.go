package pcm_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/murmur/internal/pcm"
	"github.com/farcloser/murmur/internal/types"
)

func TestSpec(t *testing.T) {
	for depth, want := range map[types.BitDepth]string{
		types.Depth64Float: "f64le",
		types.Depth16:      "s16le",
		types.Depth24:      "s24le",
		types.Depth32:      "s32le",
	} {
		got, err := pcm.Spec(depth)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := pcm.Spec(8)
	require.ErrorIs(t, err, pcm.ErrUnsupportedDepth)
}

func TestWriteFloat(t *testing.T) {
	samples := []float64{1.5, -2.25, math.Pi}

	var buf bytes.Buffer
	require.NoError(t, pcm.Write(&buf, samples, types.Depth64Float))
	require.Equal(t, 24, buf.Len())

	for i, want := range samples {
		got := math.Float64frombits(binary.LittleEndian.Uint64(buf.Bytes()[i*8:]))
		assert.InDelta(t, want, got, 0)
	}
}

func TestWrite16(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pcm.Write(&buf, []float64{0, 50, -100}, types.Depth16))
	require.Equal(t, 6, buf.Len())

	raw := buf.Bytes()
	assert.Equal(t, int16(0), int16(binary.LittleEndian.Uint16(raw[0:])))
	assert.Equal(t, int16(16384), int16(binary.LittleEndian.Uint16(raw[2:])))
	assert.Equal(t, int16(-32767), int16(binary.LittleEndian.Uint16(raw[4:])))
}

func TestWrite24(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pcm.Write(&buf, []float64{-1, 1}, types.Depth24))

	assert.Equal(t, []byte{0x01, 0x00, 0x80, 0xff, 0xff, 0x7f}, buf.Bytes())
}

func TestWriteSilence(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pcm.Write(&buf, []float64{0, 0}, types.Depth32))
	assert.Equal(t, make([]byte, 8), buf.Bytes())

	buf.Reset()
	require.NoError(t, pcm.Write(&buf, nil, types.Depth16))
	assert.Zero(t, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteErrors(t *testing.T) {
	require.ErrorIs(t, pcm.Write(&bytes.Buffer{}, []float64{1}, 12), pcm.ErrUnsupportedDepth)
	require.Error(t, pcm.Write(failingWriter{}, []float64{1}, types.Depth64Float))
}
