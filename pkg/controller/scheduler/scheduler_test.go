package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/controller/scheduler"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/secmon-lab/odkpulse/pkg/domain/types"
)

// fakeRunner cancels the scheduler context after a number of runs
type fakeRunner struct {
	mu     sync.Mutex
	calls  int
	stopAt int
	cancel context.CancelFunc
	err    func(call int) error
}

func (r *fakeRunner) Run(ctx context.Context) (*model.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls >= r.stopAt {
		r.cancel()
	}
	if r.err != nil {
		if err := r.err(r.calls); err != nil {
			return nil, err
		}
	}
	return model.NewRunRecord(types.NewRunID(), "form", time.Now()), nil
}

func (r *fakeRunner) Start(ctx context.Context) (types.RunID, error) {
	return "", nil
}

func (r *fakeRunner) LastReport() *model.Report {
	return nil
}

func fired(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestScheduler(t *testing.T) {
	every, err := scheduler.NewInterval(time.Hour)
	gt.NoError(t, err)

	t.Run("runs at startup and on every tick", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		runner := &fakeRunner{stopAt: 3, cancel: cancel}

		s := scheduler.New(runner, every, scheduler.WithClock(time.Now, fired))
		gt.NoError(t, s.Run(ctx))
		gt.Equal(t, runner.calls, 3)
	})

	t.Run("failed runs do not stop the schedule", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		runner := &fakeRunner{
			stopAt: 3,
			cancel: cancel,
			err: func(call int) error {
				if call < 3 {
					return goerr.New("fetch failed")
				}
				return nil
			},
		}

		s := scheduler.New(runner, every, scheduler.WithClock(time.Now, fired))
		gt.NoError(t, s.Run(ctx))
		gt.Equal(t, runner.calls, 3)
	})

	t.Run("waits for the daily time", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		runner := &fakeRunner{stopAt: 1, cancel: cancel}

		daily, err := scheduler.ParseDaily("17:30", time.UTC)
		gt.NoError(t, err)
		now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

		var waits []time.Duration
		after := func(d time.Duration) <-chan time.Time {
			waits = append(waits, d)
			return fired(d)
		}

		s := scheduler.New(runner, daily,
			scheduler.WithoutStartupRun(),
			scheduler.WithClock(func() time.Time { return now }, after))
		gt.NoError(t, s.Run(ctx))
		gt.Equal(t, runner.calls, 1)
		gt.A(t, waits).Longer(0)
		gt.Equal(t, waits[0], 8*time.Hour+30*time.Minute)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner := &fakeRunner{stopAt: 100, cancel: func() {}}

		s := scheduler.New(runner, every)
		gt.NoError(t, s.Run(ctx))
		gt.Equal(t, runner.calls, 0)
	})
}

func TestDailyNext(t *testing.T) {
	daily, err := scheduler.ParseDaily("17:30", time.UTC)
	gt.NoError(t, err)

	t.Run("later the same day", func(t *testing.T) {
		now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
		gt.Equal(t, daily.Next(now), time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC))
	})

	t.Run("exactly at the time rolls to the next day", func(t *testing.T) {
		now := time.Date(2024, 1, 8, 17, 30, 0, 0, time.UTC)
		gt.Equal(t, daily.Next(now), time.Date(2024, 1, 9, 17, 30, 0, 0, time.UTC))
	})

	t.Run("month end", func(t *testing.T) {
		now := time.Date(2024, 1, 31, 18, 0, 0, 0, time.UTC)
		gt.Equal(t, daily.Next(now), time.Date(2024, 2, 1, 17, 30, 0, 0, time.UTC))
	})

	t.Run("time zone", func(t *testing.T) {
		loc := time.FixedZone("EAT", 3*60*60)
		inNairobi, err := scheduler.ParseDaily("17:30", loc)
		gt.NoError(t, err)

		// 15:00 UTC is 18:00 in EAT, past today's run
		now := time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)
		next := inNairobi.Next(now)
		gt.True(t, next.Equal(time.Date(2024, 1, 9, 14, 30, 0, 0, time.UTC)))
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, v := range []string{"", "25:00", "5pm", "17:30:00"} {
			_, err := scheduler.ParseDaily(v, nil)
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, model.ErrTagConfig))
		}
	})
}

func TestInterval(t *testing.T) {
	every, err := scheduler.NewInterval(90 * time.Minute)
	gt.NoError(t, err)
	now := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	gt.Equal(t, every.Next(now), now.Add(90*time.Minute))
	gt.Equal(t, every.String(), "every 1h30m0s")

	_, err = scheduler.NewInterval(0)
	gt.Error(t, err)
}
