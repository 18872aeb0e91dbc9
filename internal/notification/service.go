package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

const sendTimeout = 30 * time.Second

// Service delivers check-in results to the configured webhook.
type Service struct {
	notifier     Notifier
	webhookURL   string
	shouldNotify bool
}

func NewService(notifier Notifier, webhookURL string) *Service {
	return NewServiceWithNotificationFlag(notifier, webhookURL, true)
}

// NewServiceWithNotificationFlag creates a Service that logs instead of
// sending when shouldNotify is false.
func NewServiceWithNotificationFlag(notifier Notifier, webhookURL string, shouldNotify bool) *Service {
	return &Service{
		notifier:     notifier,
		webhookURL:   webhookURL,
		shouldNotify: shouldNotify,
	}
}

// NewNotifier returns the notifier implementation registered under kind.
func NewNotifier(kind string, client *http.Client) (Notifier, error) {
	switch kind {
	case "", "webhook":
		return NewWebhookNotifier(client), nil
	case "discordgo":
		return NewDiscordgoNotifier(client)
	default:
		return nil, fmt.Errorf("unknown notifier %q", kind)
	}
}

// Notify sends the result to Discord. Failures are logged and returned in the
// result; they are never retried.
func (s *Service) Notify(ctx context.Context, result models.Result) NotificationResult {
	if !s.shouldNotify {
		log.Info().Str("game", result.Game.Name).Str("content", result.Content).Msg("Notifications disabled, skipping Discord webhook")
		return NotificationResult{Success: true, Timestamp: time.Now()}
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	res := s.notifier.Send(ctx, s.webhookURL, PayloadFor(result))
	if !res.Success {
		log.Error().Err(res.Error).Str("game", result.Game.Name).Str("notifier", s.notifier.Name()).Msg("Discord notification failed")
	} else {
		log.Info().Str("game", result.Game.Name).Str("notification_id", res.ID).Msg("Discord notification sent successfully")
	}
	return res
}

// Close shuts down the underlying notifier.
func (s *Service) Close() error {
	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing notifier")
		return err
	}
	return nil
}
