package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdForms() *cli.Command {
	var odkCfg config.ODK

	return &cli.Command{
		Name:  "forms",
		Usage: "List the forms of the project with their submission counts",
		Flags: odkCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := odkCfg.Configure()
			if err != nil {
				return err
			}

			forms, err := usecase.NewFormsUseCase(client).ListForms(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORM ID\tNAME\tSTATE\tSUBMISSIONS")
			for _, f := range forms {
				count := fmt.Sprint(f.Submissions)
				if f.Err != nil {
					count = "error"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Form.ID, f.Form.Name, f.Form.State, count)
			}
			return w.Flush()
		},
	}
}
