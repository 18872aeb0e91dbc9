package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

// RunHandler is the Cloud Tasks target. It executes the run synchronously and
// answers with the run summary; the queue owns the request lifetime.
func RunHandler(w http.ResponseWriter, r *http.Request, runner tasks.RunExecutor) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseRunRequest(r)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected run request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	summary := runner.Run(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		log.Error().Err(err).Str("run_id", summary.RunID).Msg("Failed to write run summary")
	}
}

func parseRunRequest(r *http.Request) (models.RunRequest, error) {
	var req models.RunRequest

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, fmt.Errorf("failed to read request body: %w", err)
	}

	log.Debug().Bytes("body", body).Msg("Raw run request")

	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("invalid request payload: %w", err)
	}

	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}
	if req.Trigger == "" {
		req.Trigger = models.TriggerHTTP
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	return req, nil
}
