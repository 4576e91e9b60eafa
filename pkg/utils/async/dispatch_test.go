package async_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/najahiiii/gh-weebhooks/pkg/utils/async"
)

// safeBuffer is a thread-safe buffer for concurrent logging
type safeBuffer struct {
	b bytes.Buffer
	m sync.Mutex
}

func (sb *safeBuffer) Write(p []byte) (int, error) {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.Write(p)
}

func (sb *safeBuffer) String() string {
	sb.m.Lock()
	defer sb.m.Unlock()
	return sb.b.String()
}

func TestDispatch(t *testing.T) {
	t.Run("runs the handler", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)

		called := false
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			called = true
			return nil
		})

		wg.Wait()
		gt.True(t, called)
	})

	t.Run("recovers from panic", func(t *testing.T) {
		done := make(chan bool, 1)

		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer func() {
				done <- true
			}()
			panic("test panic")
		})

		select {
		case <-done:
		case <-time.After(1 * time.Second):
			t.Fatal("handler did not complete within timeout")
		}
	})

	t.Run("logs handler errors", func(t *testing.T) {
		logBuf := &safeBuffer{}
		logger := slog.New(slog.NewTextHandler(logBuf, nil))
		ctx := ctxlog.With(context.Background(), logger)

		var wg sync.WaitGroup
		wg.Add(1)

		async.Dispatch(ctx, func(ctx context.Context) error {
			defer wg.Done()
			return goerr.New("delivery failed")
		})

		wg.Wait()

		deadline := time.Now().Add(1 * time.Second)
		for time.Now().Before(deadline) {
			if strings.Contains(logBuf.String(), "delivery failed") {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Errorf("error was not logged: %s", logBuf.String())
	})

	t.Run("preserves logger across context boundary", func(t *testing.T) {
		logger := slog.Default()
		ctx := ctxlog.With(context.Background(), logger)

		var wg sync.WaitGroup
		wg.Add(1)

		async.Dispatch(ctx, func(newCtx context.Context) error {
			defer wg.Done()
			gt.NotNil(t, ctxlog.From(newCtx))
			return nil
		})

		wg.Wait()
	})

	t.Run("survives cancellation of the original context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)

		async.Dispatch(ctx, func(newCtx context.Context) error {
			defer wg.Done()
			cancel()

			select {
			case <-newCtx.Done():
				t.Error("new context was cancelled")
			default:
			}
			return nil
		})

		wg.Wait()
	})
}
