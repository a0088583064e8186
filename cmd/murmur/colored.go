//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/murmur"
	"github.com/farcloser/murmur/internal/output"
)

var errPSDSource = errors.New("exactly one of --psd or --psd-file is required")

func coloredCommand() *cli.Command {
	flags := append(noiseFlags(),
		&cli.StringFlag{
			Name:    "psd",
			Aliases: []string{"p"},
			Usage:   "Analytic detector model (see the psds command)",
		},
		&cli.StringFlag{
			Name:  "psd-file",
			Usage: "Two-column \"frequency value\" text file holding the PSD",
		},
		&cli.BoolFlag{
			Name:  "asd-file",
			Usage: "Values in --psd-file are amplitude spectral densities",
		},
		&cli.FloatFlag{
			Name:    "low-frequency-cutoff",
			Aliases: []string{"l"},
			Usage:   "Frequency in Hz below which the noise has no content",
			Value:   murmur.DefaultOptions().LowFrequencyCutoff,
		},
	)

	return &cli.Command{
		Name:   "colored",
		Usage:  "Generate Gaussian noise colored by a power spectral density",
		Flags:  flags,
		Before: setupDebug,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name, path := cmd.String("psd"), cmd.String("psd-file")
			if (name == "") == (path == "") {
				return errPSDSource
			}

			opts, err := noiseOptions(cmd)
			if err != nil {
				return err
			}

			opts.LowFrequencyCutoff = cmd.Float("low-frequency-cutoff")
			start, end := cmd.Float("start"), cmd.Float("end")

			spectrum, object, err := loadSpectrum(name, path, cmd.Bool("asd-file"), opts.LowFrequencyCutoff)
			if err != nil {
				return err
			}

			colorOpts := opts
			if name != "" {
				// Analytic models are cut at opts.LowFrequencyCutoff; the filter keeps 1 Hz, like NoiseFromString.
				colorOpts.LowFrequencyCutoff = 1
			}

			ts, err := murmur.ColoredNoise(spectrum, start, end, colorOpts)
			if err != nil {
				return fmt.Errorf("coloring noise: %w", err)
			}

			extra := map[string]any{
				"seed":     seedLabel(opts),
				"spectrum": output.SpectrumToMap(spectrum),
			}

			if cmd.Bool("debug") {
				if ratio, matchErr := measure(ts, spectrum, opts.LowFrequencyCutoff); matchErr != nil {
					slog.Debug("psd not measured", "error", matchErr)
				} else {
					extra["psd_ratio"] = ratio
				}
			}

			return emit(ctx, cmd, fmt.Sprintf("%s [%v, %v)", object, start, end), ts, extra)
		},
	}
}

// measure compares the PSD of the generated noise with its target, from the cutoff up to 90% of Nyquist.
func measure(ts *murmur.TimeSeries, target *murmur.FrequencySeries, lowFrequencyCutoff float64) (float64, error) {
	measured, err := murmur.EstimatePSD(ts, min(4, ts.Duration()/2))
	if err != nil {
		return 0, err
	}

	return murmur.MatchPSD(measured, target, max(lowFrequencyCutoff, 2*measured.DeltaF), 0.9*murmur.SampleRate/2)
}

func loadSpectrum(name, path string, asd bool, lowFrequencyCutoff float64) (*murmur.FrequencySeries, string, error) {
	if name != "" {
		spectrum, err := murmur.PSD(name, lowFrequencyCutoff)

		return spectrum, name, err
	}

	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified PSD files
	if err != nil {
		return nil, path, fmt.Errorf("opening psd file: %w", err)
	}
	defer file.Close()

	spectrum, err := murmur.ReadPSD(file, asd, lowFrequencyCutoff)

	return spectrum, path, err
}
