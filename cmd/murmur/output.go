//nolint:wrapcheck
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/murmur"
	"github.com/farcloser/murmur/internal/integration/ffmpeg"
	"github.com/farcloser/murmur/internal/output"
	"github.com/farcloser/murmur/internal/pcm"
	"github.com/farcloser/murmur/internal/types"
)

// emit writes the samples if --output is set, then prints the summary. Raw PCM goes to the file (or
// stdout for "-", moving the summary to stderr); wav and flac paths are encoded through ffmpeg.
func emit(ctx context.Context, cmd *cli.Command, object string, ts *murmur.TimeSeries, extra map[string]any) error {
	depth, err := bitDepth(cmd)
	if err != nil {
		return err
	}

	summary := io.Writer(os.Stdout)

	var layout string

	if path := cmd.String("output"); path != "" {
		if layout, err = pcm.Spec(depth); err != nil {
			return err
		}

		switch {
		case path == "-":
			summary = os.Stderr
			err = pcm.Write(os.Stdout, ts.Samples, depth)
		case ffmpeg.Encodable(path):
			layout += " via ffmpeg"
			err = encodeFile(ctx, path, ts, depth)
		default:
			err = writeFile(path, ts, depth)
		}

		if err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	var meta map[string]any
	if cmd.Bool("debug") {
		meta = output.SeriesToMap(ts)
		for k, v := range extra {
			meta[k] = v
		}
	} else {
		meta = buildFriendlyOutput(ts)
	}

	if layout != "" {
		meta["output"] = fmt.Sprintf("%s (%s)", cmd.String("output"), layout)
	}

	return printMeta(cmd.String("format"), summary, &format.Data{Object: object, Meta: meta})
}

func writeFile(path string, ts *murmur.TimeSeries, depth types.BitDepth) error {
	file, err := os.Create(path) //nolint:gosec // CLI tool writes user-specified files
	if err != nil {
		return err
	}

	if err = pcm.Write(file, ts.Samples, depth); err != nil {
		_ = file.Close()

		return err
	}

	return file.Close()
}

func encodeFile(ctx context.Context, path string, ts *murmur.TimeSeries, depth types.BitDepth) error {
	var raw bytes.Buffer

	if err := pcm.Write(&raw, ts.Samples, depth); err != nil {
		return err
	}

	return ffmpeg.Encode(ctx, &raw, path, &types.PCMFormat{
		SampleRate: int(math.Round(ts.SampleRate())),
		BitDepth:   depth,
		Channels:   1,
	})
}

func printMeta(formatName string, w io.Writer, data ...*format.Data) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	return formatter.PrintAll(data, w)
}

// buildFriendlyOutput creates a user-friendly summary of a generated series.
func buildFriendlyOutput(ts *murmur.TimeSeries) map[string]any {
	raw := output.SeriesToMap(ts)

	meta := map[string]any{
		"range":   fmt.Sprintf("[%v, %v) GPS s", ts.Epoch, ts.EndTime()),
		"samples": fmt.Sprintf("%d at %.0f Hz", ts.Len(), ts.SampleRate()),
	}

	if _, ok := raw["mean"]; ok {
		meta["level"] = fmt.Sprintf("rms %.6g (mean %.6g, stddev %.6g)", raw["rms"], raw["mean"], raw["stddev"])
		meta["peak"] = fmt.Sprintf("%.6g to %.6g", raw["min"], raw["max"])
	}

	return meta
}
