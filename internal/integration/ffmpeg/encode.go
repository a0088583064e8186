package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/murmur/internal/integration/binary"
	"github.com/farcloser/murmur/internal/pcm"
	"github.com/farcloser/murmur/internal/types"
)

var ErrUnsupportedContainer = errors.New("unsupported audio container")

//nolint:gochecknoglobals // configuration data, effectively const
var containers = map[string]bool{
	".wav":  true,
	".flac": true,
}

// Encodable reports whether path names a container Encode can produce.
func Encodable(path string) bool {
	return containers[strings.ToLower(filepath.Ext(path))]
}

// Encode reads raw little-endian PCM in format from input and writes the audio file at path,
// overwriting it. The container follows the extension of path; wav keeps the sample layout of
// input, flac uses its own.
func Encode(ctx context.Context, input io.Reader, path string, format *types.PCMFormat) error {
	slog.Debug("ffmpeg.Encode", "path", path, "stage", "start")

	ext := strings.ToLower(filepath.Ext(path))
	if !containers[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedContainer, ext)
	}

	spec, err := pcm.Spec(format.BitDepth)
	if err != nil {
		return err
	}

	ffmpegPath, found := binary.Available(name)
	if !found {
		return fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"-f", spec,
		"-ar", strconv.Itoa(format.SampleRate),
		"-ac", strconv.FormatUint(uint64(format.Channels), 10),
		"-i", "-",
	}

	if ext == ".wav" {
		args = append(args, "-acodec", "pcm_"+spec)
	}

	args = append(args, "-v", "quiet", "-y", path)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...) //nolint:gosec // arguments are built from validated values

	cmd.Stdin = input

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err = cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("ffmpeg.Encode", "path", path, "stage", "timeout")

			return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		slog.Debug("ffmpeg.Encode", "path", path, "stage", "error")

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	slog.Debug("ffmpeg.Encode", "path", path, "stage", "done")

	return nil
}
