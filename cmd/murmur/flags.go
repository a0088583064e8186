//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/murmur"
	"github.com/farcloser/murmur/internal/pcm"
	"github.com/farcloser/murmur/internal/types"
)

var (
	errSeedConflict = errors.New("--seed and --unseeded are mutually exclusive")
	errNoArgs       = errors.New("unexpected arguments")
)

// noiseFlags are shared by every command producing a time series.
func noiseFlags() []cli.Flag {
	defaults := murmur.DefaultOptions()

	return []cli.Flag{
		// Time range.
		&cli.FloatFlag{
			Name:     "start",
			Usage:    "Start time in GPS seconds (inclusive)",
			Required: true,
		},
		&cli.FloatFlag{
			Name:     "end",
			Usage:    "End time in GPS seconds (exclusive)",
			Required: true,
		},

		// Realization.
		&cli.Int64Flag{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "Realization seed, 0 to 4294967295",
			Value:   defaults.Seed,
			Sources: cli.EnvVars("MURMUR_SEED"),
		},
		&cli.BoolFlag{
			Name:  "unseeded",
			Usage: "Draw a fresh, non-reproducible realization",
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Aliases: []string{"j"},
			Usage:   "Blocks generated in parallel (0 = number of CPUs)",
			Value:   defaults.Concurrency,
		},

		// Output.
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write raw samples to this file (\"-\" for stdout)",
		},
		&cli.IntFlag{
			Name:    "bit-depth",
			Aliases: []string{"b"},
			Usage:   "Sample format of --output: 0 (float64), 16, 24 or 32 (peak normalized)",
			Value:   int(types.Depth64Float),
		},
		formatFlag(),
		debugFlag(),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: console, json, markdown",
		Value:   "console",
	}
}

func debugFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"D"},
		Usage:   "Enable debug logging and include raw data in output",
	}
}

// setupDebug is installed as the Before hook of every command.
func setupDebug(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if cmd.NArg() != 0 {
		return ctx, fmt.Errorf("%w: %v", errNoArgs, cmd.Args().Slice())
	}

	return ctx, nil
}

func noiseOptions(cmd *cli.Command) (murmur.Options, error) {
	opts := murmur.DefaultOptions()

	if cmd.IsSet("seed") && cmd.Bool("unseeded") {
		return opts, errSeedConflict
	}

	opts.Seed = cmd.Int64("seed")
	opts.Unseeded = cmd.Bool("unseeded")
	opts.Concurrency = cmd.Int("concurrency")

	return opts, nil
}

func bitDepth(cmd *cli.Command) (types.BitDepth, error) {
	//nolint:gosec // validated right below
	depth := types.BitDepth(cmd.Int("bit-depth"))

	if _, err := pcm.Spec(depth); err != nil {
		return depth, err
	}

	return depth, nil
}
