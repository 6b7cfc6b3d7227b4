package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/controller/scheduler"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Schedule holds the scheduler settings. Exactly one of DailyAt and
// Interval is set.
type Schedule struct {
	DailyAt     string
	Interval    time.Duration
	Timezone    string
	SkipStartup bool
}

// Flags returns CLI flags for schedule configuration
func (s *Schedule) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "daily-at",
			Usage:       "Run every day at HH:MM",
			Category:    "Schedule",
			Sources:     cli.EnvVars("ODKPULSE_DAILY_AT"),
			Destination: &s.DailyAt,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "Run at a fixed interval, e.g. 1h",
			Category:    "Schedule",
			Sources:     cli.EnvVars("ODKPULSE_INTERVAL"),
			Destination: &s.Interval,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA time zone of --daily-at, local time when empty",
			Category:    "Schedule",
			Sources:     cli.EnvVars("ODKPULSE_TIMEZONE", "TZ"),
			Destination: &s.Timezone,
		},
		&cli.BoolFlag{
			Name:        "skip-startup-run",
			Usage:       "Do not run once at startup",
			Category:    "Schedule",
			Sources:     cli.EnvVars("ODKPULSE_SKIP_STARTUP_RUN"),
			Destination: &s.SkipStartup,
		},
	}
}

// Configure builds the schedule
func (s *Schedule) Configure() (scheduler.Schedule, error) {
	switch {
	case s.DailyAt != "" && s.Interval != 0:
		return nil, goerr.New("--daily-at and --interval are mutually exclusive", goerr.T(model.ErrTagConfig))
	case s.DailyAt != "":
		loc := time.Local
		if s.Timezone != "" {
			l, err := time.LoadLocation(s.Timezone)
			if err != nil {
				return nil, goerr.Wrap(err, "unknown time zone",
					goerr.T(model.ErrTagConfig),
					goerr.V("timezone", s.Timezone))
			}
			loc = l
		}
		daily, err := scheduler.ParseDaily(s.DailyAt, loc)
		if err != nil {
			return nil, err
		}
		return daily, nil
	case s.Interval != 0:
		interval, err := scheduler.NewInterval(s.Interval)
		if err != nil {
			return nil, err
		}
		return interval, nil
	default:
		return nil, goerr.New("--daily-at or --interval is required", goerr.T(model.ErrTagConfig))
	}
}

// Options returns the scheduler options
func (s *Schedule) Options() []scheduler.Option {
	if s.SkipStartup {
		return []scheduler.Option{scheduler.WithoutStartupRun()}
	}
	return nil
}

// LogValue returns structured log value
func (s Schedule) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("daily_at", s.DailyAt),
		slog.Duration("interval", s.Interval),
		slog.String("timezone", s.Timezone),
		slog.Bool("skip_startup_run", s.SkipStartup),
	)
}
