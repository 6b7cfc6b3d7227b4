package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// pipelineConfig gathers everything a report run needs
type pipelineConfig struct {
	odk       config.ODK
	report    config.Report
	output    config.Output
	sheets    config.Sheets
	email     config.Email
	slack     config.Slack
	firestore config.Firestore
}

func (p *pipelineConfig) Flags() []cli.Flag {
	return joinFlags(
		p.odk.Flags(),
		p.report.Flags(),
		p.output.Flags(),
		p.sheets.Flags(),
		p.email.Flags(),
		p.slack.Flags(),
		p.firestore.Flags(),
	)
}

func (p *pipelineConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("odk", p.odk),
		slog.Any("report", p.report),
		slog.Any("output", p.output),
		slog.Any("sheets", p.sheets),
		slog.Any("email", p.email),
		slog.Any("slack", p.slack),
		slog.Any("firestore", p.firestore),
	)
}

// buildRunner wires the report use case. The returned repository must be
// closed by the caller.
func (p *pipelineConfig) buildRunner(ctx context.Context) (*usecase.ReportUseCase, interfaces.Repository, error) {
	reportCfg, err := p.report.Configure()
	if err != nil {
		return nil, nil, err
	}

	client, err := p.odk.Configure()
	if err != nil {
		return nil, nil, err
	}

	sinks := p.output.Configure(ctx)
	sheetSink, err := p.sheets.Configure(ctx, reportCfg.SheetURL, p.output.StartCell)
	if err != nil {
		return nil, nil, err
	}
	if sheetSink != nil {
		sinks = append(sinks, sheetSink)
	}

	var notifiers []interfaces.Notifier
	mailer, err := p.email.Configure()
	if err != nil {
		return nil, nil, err
	}
	if mailer != nil {
		notifiers = append(notifiers, mailer)
	}
	slackSvc, err := p.slack.Configure()
	if err != nil {
		return nil, nil, err
	}
	if slackSvc != nil {
		notifiers = append(notifiers, slackSvc)
	}

	if len(sinks) == 0 {
		ctxlog.From(ctx).Warn("No output configured, the report is only logged")
	}

	repo, err := p.firestore.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	uc, err := usecase.NewReportUseCase(client, repo, reportCfg,
		usecase.WithSinks(sinks...),
		usecase.WithNotifiers(notifiers...),
		usecase.WithRecipients(p.email.RecipientList()...),
	)
	if err != nil {
		_ = repo.Close()
		return nil, nil, err
	}
	return uc, repo, nil
}

func cmdRun() *cli.Command {
	var pipeline pipelineConfig

	return &cli.Command{
		Name:  "run",
		Usage: "Fetch submissions once, export the summary and notify",
		Flags: pipeline.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Info("Starting report run", slog.Any("config", &pipeline))

			uc, repo, err := pipeline.buildRunner(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Warn("Failed to close repository", "error", err)
				}
			}()

			run, err := uc.Run(ctx)
			if err != nil {
				return err
			}

			if report := uc.LastReport(); report != nil {
				fmt.Fprint(os.Stdout, report.Summary())
			}
			logger.Info("Report run completed",
				"run_id", run.ID,
				"fetched", run.Fetched,
				"sinks", run.Sinks,
				"notified", run.Notified,
				"notify_errors", run.NotifyErrors)
			return nil
		},
	}
}
