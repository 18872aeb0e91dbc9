package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CloudTasksQueue delivers runs as HTTP tasks to the /run target.
// Retries are governed by the queue's retry config, not per task.
type CloudTasksQueue struct {
	client tasks.CloudTasksClient
	cfg    *config.Config
}

func NewCloudTasksQueue(ctx context.Context, cfg *config.Config) (*CloudTasksQueue, error) {
	client, err := tasks.NewCloudTasksClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}
	return &CloudTasksQueue{client: client, cfg: cfg}, nil
}

func NewCloudTasksQueueWithClient(client tasks.CloudTasksClient, cfg *config.Config) *CloudTasksQueue {
	return &CloudTasksQueue{client: client, cfg: cfg}
}

func (q *CloudTasksQueue) Dispatch(ctx context.Context, req models.RunRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal run request: %w", err)
	}

	deliverAt := req.RequestedAt
	if deliverAt.IsZero() {
		deliverAt = time.Now()
	}

	task := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        q.cfg.HandlerAddress,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: body,
			},
		},
		ScheduleTime:     timestamppb.New(deliverAt),
		DispatchDeadline: durationpb.New(tasks.TaskTimeout),
	}

	log.Info().Str("run_id", req.RunID).Str("target", q.cfg.HandlerAddress).Time("deliver_at", deliverAt).Msg("Enqueuing Cloud Task")

	if _, err := q.client.CreateTask(ctx, &taskspb.CreateTaskRequest{
		Parent: tasks.QueuePath(q.cfg),
		Task:   task,
	}); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (q *CloudTasksQueue) Close() error {
	return q.client.Close()
}
