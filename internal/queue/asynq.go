package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

// TaskEnqueuer is the subset of *asynq.Client used here.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqQueue pushes runs onto Redis for cmd/worker to execute.
type AsynqQueue struct {
	client TaskEnqueuer
}

func NewAsynqQueue(cfg *config.Config) *AsynqQueue {
	return &AsynqQueue{client: asynq.NewClient(tasks.RedisClientOpt(cfg))}
}

// NewAsynqQueueWithClient is used by tests and callers that own the client.
func NewAsynqQueueWithClient(client TaskEnqueuer) *AsynqQueue {
	return &AsynqQueue{client: client}
}

func (q *AsynqQueue) Dispatch(ctx context.Context, req models.RunRequest) error {
	task, err := tasks.NewCheckInRunTask(req)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task, tasks.TaskOptions()...)
	if err != nil {
		return fmt.Errorf("failed to enqueue check-in run: %w", err)
	}

	log.Info().Str("run_id", req.RunID).Str("task_id", info.ID).Str("queue", info.Queue).Msg("Enqueued check-in run")
	return nil
}

func (q *AsynqQueue) Close() error {
	return q.client.Close()
}
