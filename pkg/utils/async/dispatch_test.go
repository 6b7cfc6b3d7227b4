package async_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/odkpulse/pkg/utils/async"
)

// syncBuffer guards a bytes.Buffer written from the dispatched goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async handler did not finish within timeout")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler", func(t *testing.T) {
		var executed atomic.Bool
		wait(t, async.Dispatch(context.Background(), func(ctx context.Context) error {
			executed.Store(true)
			return nil
		}))
		gt.True(t, executed.Load())
	})

	t.Run("outlives caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ctxErr error
		wait(t, async.Dispatch(ctx, func(ctx context.Context) error {
			ctxErr = ctx.Err()
			return nil
		}))
		gt.NoError(t, ctxErr)
	})

	t.Run("logs errors with caller logger", func(t *testing.T) {
		var out syncBuffer
		ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&out, nil)))

		wait(t, async.Dispatch(ctx, func(ctx context.Context) error {
			return goerr.New("fetch failed")
		}))
		gt.S(t, out.String()).Contains("fetch failed")
	})

	t.Run("recovers panic", func(t *testing.T) {
		var out syncBuffer
		ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&out, nil)))

		wait(t, async.Dispatch(ctx, func(ctx context.Context) error {
			panic("boom")
		}))
		gt.S(t, out.String()).Contains("Panic in async handler")
	})

	t.Run("concurrent dispatches", func(t *testing.T) {
		var counter atomic.Int32
		var dones []<-chan struct{}
		for range 10 {
			dones = append(dones, async.Dispatch(context.Background(), func(ctx context.Context) error {
				counter.Add(1)
				return nil
			}))
		}
		for _, done := range dones {
			wait(t, done)
		}
		gt.Equal(t, counter.Load(), int32(10))
	})
}
