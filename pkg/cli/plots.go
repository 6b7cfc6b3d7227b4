package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPlots() *cli.Command {
	var (
		odkCfg config.ODK
		form   formSelector
		output string
	)

	return &cli.Command{
		Name:  "plots",
		Usage: "Export plot ID repetition statistics per submitter to an XLSX workbook",
		Flags: joinFlags(
			odkCfg.Flags(),
			form.Flags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:        "output",
					Aliases:     []string{"o"},
					Usage:       "Output XLSX file",
					Value:       "plot_report.xlsx",
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

			report, err := usecase.NewPlotsUseCase(client).Export(ctx, formID, output)
			if err != nil {
				return err
			}
			ctxlog.From(ctx).Info("Plot report exported",
				"form_id", formID,
				"output", output,
				"submitters", len(report.Submitters),
				"most_repeated", report.MostRepeated.PlotID)
			return nil
		},
	}
}
