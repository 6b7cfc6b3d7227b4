package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDump() *cli.Command {
	var (
		odkCfg config.ODK
		form   formSelector
		output string
	)

	return &cli.Command{
		Name:  "dump",
		Usage: "Write every submission of a form as a JSON array",
		Flags: joinFlags(
			odkCfg.Flags(),
			form.Flags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "output",
					Aliases:     []string{"o"},
					Usage:       "Output file, '-' for stdout (default: <form>_submissions.json)",
					Destination: &output,
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

			if output == "" {
				output = string(formID) + "_submissions.json"
			}

			var w io.Writer = os.Stdout
			if output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			n, err := usecase.NewDumpUseCase(client).Dump(ctx, formID, w)
			if err != nil {
				return err
			}
			ctxlog.From(ctx).Info("Submissions dumped", "form_id", formID, "count", n, "output", output)
			return nil
		},
	}
}
