// Package checkin claims the daily HoYoLAB reward for a game and turns the
// response into a Discord-ready message.
package checkin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

// signResponse is the subset of the HoYoLAB sign response we read.
type signResponse struct {
	RetCode int     `json:"retcode"`
	Message *string `json:"message"`
}

// Invoker performs check-in requests. It is safe for concurrent use.
type Invoker struct {
	client *http.Client
	pick   func(n int) int
}

// NewInvoker creates an Invoker. A nil client falls back to a client with a
// 30 second timeout.
func NewInvoker(client *http.Client) *Invoker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Invoker{
		client: client,
		pick:   rand.IntN,
	}
}

// CheckIn claims the reward for game and returns the classified result.
// Transport and decoding failures are reported as OutcomeFailed with Err set.
func (inv *Invoker) CheckIn(ctx context.Context, game models.Game, cookie, userID string, silent bool) models.Result {
	result := models.Result{
		Game:   game,
		Silent: silent,
	}

	message, retCode, err := inv.sign(ctx, game, cookie)
	if err != nil {
		log.Error().Err(err).Str("game", game.Name).Msg("Check-in request failed")
		result.Err = err
		message = ""
	}

	result.Message = message
	result.RetCode = retCode

	outcome, body := Classify(game, message, inv.pick)
	result.Outcome = outcome
	result.Content = Prefix(silent, userID) + body

	log.Info().
		Str("game", game.Name).
		Str("outcome", outcome.String()).
		Int("retcode", retCode).
		Str("message", message).
		Msg("Checked in")

	return result
}

func (inv *Invoker) sign(ctx context.Context, game models.Game, cookie string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, game.URL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cookie", cookie)

	resp, err := inv.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to post check-in: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().Str("game", game.Name).Int("status", resp.StatusCode).Bytes("body", body).Msg("Check-in response")

	var data signResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", 0, fmt.Errorf("failed to decode check-in response (status %d): %w", resp.StatusCode, err)
	}

	if data.Message == nil {
		return "", data.RetCode, nil
	}
	return *data.Message, data.RetCode, nil
}
