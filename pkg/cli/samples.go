package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSamples() *cli.Command {
	var (
		odkCfg config.ODK
		form   formSelector
		count  int
		dir    string
		seed   uint64
	)

	return &cli.Command{
		Name:  "samples",
		Usage: "Download the attachments of randomly sampled submissions",
		Flags: joinFlags(
			odkCfg.Flags(),
			form.Flags(),
			[]cli.Flag{
				&cli.IntFlag{
					Name:        "count",
					Aliases:     []string{"n"},
					Usage:       "Number of submissions to sample",
					Value:       5,
					Destination: &count,
				},
				&cli.StringFlag{
					Name:        "dir",
					Usage:       "Directory to save attachments in",
					Value:       "samples",
					Destination: &dir,
				},
				&cli.Uint64Flag{
					Name:        "seed",
					Usage:       "Random seed, 0 for a random sample",
					Destination: &seed,
				},
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			formID, err := form.Resolve()
			if err != nil {
				return err
			}
			client, err := odkCfg.Configure()
			if err != nil {
				return err
			}

			var opts []usecase.SamplesOption
			if seed != 0 {
				opts = append(opts, usecase.WithSeed(seed))
			}

			result, err := usecase.NewSamplesUseCase(client, client, opts...).Download(ctx, formID, count, dir)
			if err != nil {
				return err
			}
			ctxlog.From(ctx).Info("Samples downloaded",
				"form_id", formID,
				"sampled", len(result.Sampled),
				"saved", len(result.Saved),
				"failed", result.Failed,
				"dir", dir)
			return nil
		},
	}
}
