package queue

import (
	"context"
	"fmt"

	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

// Dispatcher hands a run off for execution without waiting for it.
// Implementations exist for an in-process goroutine, Redis (asynq) and
// Cloud Tasks.
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.RunRequest) error
	Close() error
}

// New builds the dispatcher selected by cfg.DispatchMode. The runner is
// only used by the in-process dispatcher; the queue-backed ones hand the
// run to a worker or to the /run target.
func New(ctx context.Context, cfg *config.Config, runner tasks.RunExecutor) (Dispatcher, error) {
	switch cfg.DispatchMode {
	case config.DispatchBackground, "":
		return NewBackground(runner), nil
	case config.DispatchRedis:
		return NewAsynqQueue(cfg), nil
	case config.DispatchCloudTasks:
		return NewCloudTasksQueue(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown dispatch mode %q", cfg.DispatchMode)
	}
}
