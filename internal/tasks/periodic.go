package tasks

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

// PeriodicRegistrar abstracts asynq.Scheduler for tests.
type PeriodicRegistrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// RegisterDailyCheckIn registers the silent daily run under cronspec.
func RegisterDailyCheckIn(s PeriodicRegistrar, cronspec string) (string, error) {
	task, err := NewCheckInRunTask(models.RunRequest{
		Silent:  true,
		Trigger: models.TriggerScheduled,
	})
	if err != nil {
		return "", err
	}

	entryID, err := s.Register(cronspec, task, TaskOptions()...)
	if err != nil {
		return "", fmt.Errorf("failed to register periodic check-in %q: %w", cronspec, err)
	}

	log.Info().Str("cron", cronspec).Str("entry_id", entryID).Msg("Registered daily check-in")
	return entryID, nil
}
