package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebhookNotifier posts the payload as plain JSON to the webhook URL.
type WebhookNotifier struct {
	client *http.Client
}

func NewWebhookNotifier(client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookNotifier{client: client}
}

func (w *WebhookNotifier) Name() string {
	return "webhook"
}

// Send posts payload to webhookURL. The response body is logged but not parsed.
func (w *WebhookNotifier) Send(ctx context.Context, webhookURL string, payload WebhookPayload) NotificationResult {
	result := NotificationResult{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		result.Error = fmt.Errorf("failed to marshal webhook payload: %w", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(b))
	if err != nil {
		result.Error = fmt.Errorf("failed to create webhook request: %w", err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		result.Error = fmt.Errorf("failed to post Discord webhook: %w", err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	result.StatusCode = resp.StatusCode
	result.Body = string(body)
	if err != nil {
		result.Error = fmt.Errorf("failed to read webhook response: %w", err)
		return result
	}

	log.Info().Str("notification_id", result.ID).Int("status", resp.StatusCode).Str("body", result.Body).Msg("[Notified Discord]")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Error = fmt.Errorf("failed to post Discord webhook: %s", resp.Status)
		return result
	}

	result.Success = true
	return result
}

func (w *WebhookNotifier) Close() error {
	return nil
}
