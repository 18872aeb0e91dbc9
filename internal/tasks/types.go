package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

const (
	TypeCheckInRun = "checkin:run"
	QueueName      = "default"
	TaskTimeout    = 5 * time.Minute
)

// NewCheckInRunTask creates a new asynq task from a run request.
func NewCheckInRunTask(req models.RunRequest) (*asynq.Task, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeCheckInRun, data), nil
}

// ParseCheckInRunPayload deserializes a run request from an asynq task.
func ParseCheckInRunPayload(t *asynq.Task) (models.RunRequest, error) {
	var req models.RunRequest
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return req, nil
}

// TaskOptions are applied to every check-in task. Runs are never retried.
func TaskOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(QueueName),
		asynq.MaxRetry(0),
		asynq.Timeout(TaskTimeout),
	}
}

func RedisClientOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}
