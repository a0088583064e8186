//nolint:wrapcheck
package main

import (
	"context"
	"os"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/murmur"
	"github.com/farcloser/murmur/internal/output"
)

func psdsCommand() *cli.Command {
	return &cli.Command{
		Name:   "psds",
		Usage:  "List the analytic detector models accepted by colored --psd",
		Flags:  []cli.Flag{formatFlag(), debugFlag()},
		Before: setupDebug,
		Action: func(_ context.Context, cmd *cli.Command) error {
			names := murmur.PSDNames()
			data := make([]*format.Data, 0, len(names))

			for _, name := range names {
				meta := map[string]any{}

				if cmd.Bool("debug") {
					spectrum, err := murmur.PSD(name, 0)
					if err != nil {
						return err
					}

					meta = output.SpectrumToMap(spectrum)
				}

				data = append(data, &format.Data{Object: name, Meta: meta})
			}

			return printMeta(cmd.String("format"), os.Stdout, data...)
		},
	}
}
