package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/cli/config"
	controller "github.com/secmon-lab/odkpulse/pkg/controller/http"
	"github.com/secmon-lab/odkpulse/pkg/controller/scheduler"
	"github.com/urfave/cli/v3"
)

func cmdSchedule() *cli.Command {
	var (
		pipeline    pipelineConfig
		scheduleCfg config.Schedule
		serverCfg   config.Server
	)

	return &cli.Command{
		Name:  "schedule",
		Usage: "Run the report periodically, optionally serving the status API",
		Flags: joinFlags(
			pipeline.Flags(),
			scheduleCfg.Flags(),
			serverCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			schedule, err := scheduleCfg.Configure()
			if err != nil {
				return err
			}

			logger.Info("Starting odkpulse scheduler",
				slog.String("schedule", schedule.String()),
				slog.Any("server", serverCfg),
				slog.Any("config", &pipeline),
			)

			uc, repo, err := pipeline.buildRunner(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Warn("Failed to close repository", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var server *controller.Server
			if serverCfg.IsConfigured() {
				server = controller.NewServer(ctx, serverCfg.Addr, uc, repo,
					controller.WithAPIToken(serverCfg.APIToken))
				go func() {
					logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
					if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logger.Error("HTTP server error", slog.Any("error", err))
						stop()
					}
				}()
			}

			runErr := scheduler.New(uc, schedule, scheduleCfg.Options()...).Run(ctx)

			if server != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logger.Info("Server shutdown complete")
			}

			return runErr
		},
	}
}
