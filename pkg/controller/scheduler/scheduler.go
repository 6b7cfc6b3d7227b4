// Package scheduler triggers report runs on a daily or fixed-interval
// schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/odkpulse/pkg/domain/interfaces"
	"github.com/secmon-lab/odkpulse/pkg/utils/apperr"
)

// Scheduler runs the report pipeline once at startup and then whenever the
// schedule fires. A failed run is logged and the next one is still
// scheduled.
type Scheduler struct {
	runner       interfaces.ReportRunner
	schedule     Schedule
	runAtStartup bool
	now          func() time.Time
	after        func(time.Duration) <-chan time.Time
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithoutStartupRun skips the run at startup
func WithoutStartupRun() Option {
	return func(s *Scheduler) {
		s.runAtStartup = false
	}
}

// WithClock replaces time.Now and time.After
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
		s.after = after
	}
}

// New creates a new Scheduler
func New(runner interfaces.ReportRunner, schedule Schedule, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:       runner,
		schedule:     schedule,
		runAtStartup: true,
		now:          time.Now,
		after:        time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is canceled. Runs are sequential; a run that is
// still going when the next one is due delays it.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.From(ctx)
	logger.Info("Scheduler started", "schedule", s.schedule.String())

	if s.runAtStartup {
		s.runOnce(ctx)
	}

	for ctx.Err() == nil {
		now := s.now()
		next := s.schedule.Next(now)
		logger.Info("Next report run scheduled", "at", next)

		select {
		case <-ctx.Done():
		case <-s.after(next.Sub(now)):
			s.runOnce(ctx)
		}
	}

	logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	run, err := s.runner.Run(ctx)
	if err != nil {
		apperr.Handle(ctx, err)
		return
	}
	ctxlog.From(ctx).Info("Scheduled run completed",
		"run_id", run.ID,
		"elapsed", run.Duration())
}
