package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

var ErrClosed = errors.New("dispatcher is closed")

// Background runs each dispatched request on its own goroutine, detached
// from the caller's context. In-flight runs are tracked so the process
// can wait for them on shutdown.
type Background struct {
	runner tasks.RunExecutor

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	// OnComplete, when set, receives every finished summary.
	OnComplete func(models.RunSummary)
}

func NewBackground(runner tasks.RunExecutor) *Background {
	return &Background{runner: runner}
}

func (b *Background) Dispatch(ctx context.Context, req models.RunRequest) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.wg.Add(1)
	b.mu.Unlock()

	// The request context ends when the HTTP response is written.
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("run_id", req.RunID).Interface("panic", r).Msg("Background run panicked")
			}
		}()

		summary := b.runner.Run(runCtx, req)
		log.Info().Str("run_id", summary.RunID).Int("games", len(summary.Games)).Msg("Background run finished")
		if b.OnComplete != nil {
			b.OnComplete(summary)
		}
	}()

	return nil
}

// Drain stops accepting runs and waits for in-flight ones until ctx is done.
func (b *Background) Drain(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting runs and blocks until in-flight ones finish.
func (b *Background) Close() error {
	return b.Drain(context.Background())
}
