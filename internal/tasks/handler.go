package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

// RunExecutor runs a check-in for every registered game.
type RunExecutor interface {
	Run(ctx context.Context, req models.RunRequest) models.RunSummary
}

// CheckInRunHandler processes check-in run tasks from the Redis queue.
type CheckInRunHandler struct {
	runner RunExecutor
}

func NewCheckInRunHandler(runner RunExecutor) *CheckInRunHandler {
	return &CheckInRunHandler{runner: runner}
}

func (h *CheckInRunHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	req, err := ParseCheckInRunPayload(t)
	if err != nil {
		return fmt.Errorf("failed to parse task payload: %v: %w", err, asynq.SkipRetry)
	}

	// Periodic tasks are registered once with a static payload.
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}
	if req.Trigger == "" {
		req.Trigger = models.TriggerScheduled
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}

	log.Info().Str("run_id", req.RunID).Str("trigger", req.Trigger).Msg("Processing check-in task")

	summary := h.runner.Run(ctx, req)
	for _, g := range summary.Games {
		log.Info().Str("run_id", summary.RunID).Str("game", g.Game).Str("outcome", g.Outcome).Bool("notified", g.Notified).Msg("Check-in task result")
	}
	return nil
}
