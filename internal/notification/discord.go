package notification

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DiscordgoNotifier executes the webhook through a discordgo session. Silent
// payloads are sent with the suppress-notifications flag set.
type DiscordgoNotifier struct {
	session *discordgo.Session
}

func NewDiscordgoNotifier(client *http.Client) (*DiscordgoNotifier, error) {
	// Webhook execution is authorised by the token in the URL, no bot token needed.
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if client != nil {
		session.Client = client
	}
	// A notification is attempted once. discordgo otherwise re-sends on 502 and 429.
	session.MaxRestRetries = 0
	session.ShouldRetryOnRateLimit = false

	return &DiscordgoNotifier{session: session}, nil
}

func (d *DiscordgoNotifier) Name() string {
	return "discordgo"
}

func (d *DiscordgoNotifier) Send(ctx context.Context, webhookURL string, payload WebhookPayload) NotificationResult {
	result := NotificationResult{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
	}

	webhookID, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		result.Error = err
		return result
	}

	params := &discordgo.WebhookParams{
		Username:  payload.Username,
		AvatarURL: payload.AvatarURL,
		Content:   payload.Content,
	}
	if payload.Silent {
		params.Flags = discordgo.MessageFlagsSuppressNotifications
	}

	msg, err := d.session.WebhookExecute(webhookID, token, true, params, discordgo.WithContext(ctx))
	if err != nil {
		result.Error = fmt.Errorf("failed to send Discord message: %w", err)
		return result
	}

	result.Success = true
	if msg != nil {
		result.Body = msg.ID
	}
	log.Info().Str("notification_id", result.ID).Str("message_id", result.Body).Msg("[Notified Discord]")
	return result
}

func (d *DiscordgoNotifier) Close() error {
	if d.session != nil {
		return d.session.Close()
	}
	return nil
}

// ParseWebhookURL extracts the webhook ID and token from
// https://discord.com/api[/vN]/webhooks/{id}/{token}.
func ParseWebhookURL(webhookURL string) (id, token string, err error) {
	u, err := url.Parse(webhookURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part != "webhooks" {
			continue
		}
		if i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
		break
	}
	return "", "", fmt.Errorf("webhook url %q does not contain /webhooks/{id}/{token}", webhookURL)
}
