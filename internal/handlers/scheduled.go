package handlers

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/queue"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

// ScheduledHandler receives the Cloud Scheduler event and dispatches a silent
// run. It returns nil on dispatch failure so the event is not redelivered.
func ScheduledHandler(ctx context.Context, e event.Event, dispatcher queue.Dispatcher) error {
	req := services.NewRunRequest(models.TriggerScheduled, true)

	log.Info().
		Str("run_id", req.RunID).
		Str("event_id", e.ID()).
		Str("source", e.Source()).
		Time("event_time", e.Time()).
		Msg("Scheduled check-in fired")

	if err := dispatcher.Dispatch(ctx, req); err != nil {
		log.Error().Err(err).Str("run_id", req.RunID).Msg("Failed to dispatch scheduled run")
	}
	return nil
}
