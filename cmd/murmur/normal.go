//nolint:wrapcheck
package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/murmur"
)

func normalCommand() *cli.Command {
	return &cli.Command{
		Name:   "normal",
		Usage:  "Generate white Gaussian noise with a unit one-sided PSD",
		Flags:  noiseFlags(),
		Before: setupDebug,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := noiseOptions(cmd)
			if err != nil {
				return err
			}

			start, end := cmd.Float("start"), cmd.Float("end")

			ts, err := murmur.Normal(start, end, opts)
			if err != nil {
				return fmt.Errorf("generating noise: %w", err)
			}

			return emit(ctx, cmd, fmt.Sprintf("normal [%v, %v)", start, end), ts, map[string]any{
				"seed":     seedLabel(opts),
				"variance": murmur.SampleRate / 2,
			})
		},
	}
}

func seedLabel(opts murmur.Options) any {
	if opts.Unseeded {
		return "none"
	}

	return opts.Seed
}
