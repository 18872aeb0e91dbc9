package services

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/checkin"
	"github.com/ubergonmx/hyv-auto-daily/internal/games"
	"github.com/ubergonmx/hyv-auto-daily/internal/metrics"
	"github.com/ubergonmx/hyv-auto-daily/internal/notification"
)

// NewRunner wires the game registry, invoker and notifier from cfg. With
// shouldNotify false, results are logged instead of sent to Discord.
func NewRunner(cfg *config.Config, m *metrics.Metrics, shouldNotify bool) (*Runner, error) {
	client := &http.Client{Timeout: cfg.HTTPTimeout()}

	list, err := games.WithBaseURL(games.Default(), cfg.HoyolabBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build game registry: %w", err)
	}

	notifier, err := notification.NewNotifier(cfg.Notifier, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	return &Runner{
		Games:    list,
		Invoker:  checkin.NewInvoker(client),
		Notifier: notification.NewServiceWithNotificationFlag(notifier, cfg.DiscordWebhook, shouldNotify),
		Cookie:   cfg.AccountCookie,
		UserID:   cfg.DiscordUserID,
		Metrics:  m,
	}, nil
}

// Close releases the notifier, if it holds resources.
func (r *Runner) Close() error {
	if c, ok := r.Notifier.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
