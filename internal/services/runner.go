package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/metrics"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/notification"
)

type CheckInInvoker interface {
	CheckIn(ctx context.Context, game models.Game, cookie, userID string, silent bool) models.Result
}

type ResultNotifier interface {
	Notify(ctx context.Context, result models.Result) notification.NotificationResult
}

// Runner performs one check-in run: every game in order, check-in then
// notify. It holds no per-run state and is safe for concurrent use.
type Runner struct {
	Games    []models.Game
	Invoker  CheckInInvoker
	Notifier ResultNotifier
	Cookie   string
	UserID   string
	Metrics  *metrics.Metrics
}

// NewRunRequest stamps a new run with an ID and the current time.
func NewRunRequest(trigger string, silent bool) models.RunRequest {
	return models.RunRequest{
		RunID:       uuid.New().String(),
		Silent:      silent,
		Trigger:     trigger,
		RequestedAt: time.Now().UTC(),
	}
}

// Run processes the games sequentially. A failure for one game is logged
// and recorded in the summary; the remaining games still run.
func (r *Runner) Run(ctx context.Context, req models.RunRequest) models.RunSummary {
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	logger := log.With().Str("run_id", req.RunID).Str("trigger", req.Trigger).Bool("silent", req.Silent).Logger()
	logger.Info().Int("games", len(r.Games)).Msg("Starting check-in run")
	r.Metrics.Run(req.Trigger)

	summary := models.RunSummary{
		RunID:   req.RunID,
		Trigger: req.Trigger,
		Silent:  req.Silent,
		Games:   make([]models.GameOutcome, 0, len(r.Games)),
	}

	for _, game := range r.Games {
		logger.Info().Str("game", game.Name).Msg("Checking in")

		result := r.Invoker.CheckIn(ctx, game, r.Cookie, r.UserID, req.Silent)
		r.Metrics.CheckIn(game.Key, result.Outcome.String())
		logger.Info().Str("game", game.Name).Str("content", result.Content).Msg("Checked in status")

		outcome := models.GameOutcome{
			Game:    game.Name,
			Outcome: result.Outcome.String(),
		}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
		}

		sent := r.Notifier.Notify(ctx, result)
		r.Metrics.Notification(sent.Success)
		outcome.Notified = sent.Success
		if sent.Error != nil && outcome.Error == "" {
			outcome.Error = sent.Error.Error()
		}

		summary.Games = append(summary.Games, outcome)
	}

	logger.Info().Msg("Check-in run complete")
	return summary
}
