package notification

import (
	"context"
	"time"

	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

// WebhookPayload maps directly onto the Discord execute-webhook body.
// Silent is delivery metadata and is never serialised.
type WebhookPayload struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Content   string `json:"content"`
	Silent    bool   `json:"-"`
}

type NotificationResult struct {
	ID         string
	Success    bool
	Error      error
	StatusCode int
	Body       string
	Timestamp  time.Time
}

type Notifier interface {
	Name() string
	Send(ctx context.Context, webhookURL string, payload WebhookPayload) NotificationResult
	Close() error
}

// PayloadFor builds the webhook payload for a check-in result.
func PayloadFor(result models.Result) WebhookPayload {
	return WebhookPayload{
		Username:  result.Game.Username,
		AvatarURL: result.Game.AvatarURL,
		Content:   result.Content,
		Silent:    result.Silent,
	}
}
