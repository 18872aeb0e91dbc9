package models

import "time"

const (
	TriggerScheduled = "scheduled"
	TriggerHTTP      = "http"
	TriggerCLI       = "cli"
)

// RunRequest is the unit of work passed through dispatchers and queues.
type RunRequest struct {
	RunID       string    `json:"run_id"`
	Silent      bool      `json:"silent"`
	Trigger     string    `json:"trigger"`
	RequestedAt time.Time `json:"requested_at"`
}

// GameOutcome records what happened to a single game during a run.
type GameOutcome struct {
	Game     string `json:"game"`
	Outcome  string `json:"outcome"`
	Notified bool   `json:"notified"`
	Error    string `json:"error,omitempty"`
}

// RunSummary is returned by the runner once every game has been processed.
type RunSummary struct {
	RunID   string        `json:"run_id"`
	Trigger string        `json:"trigger"`
	Silent  bool          `json:"silent"`
	Games   []GameOutcome `json:"games"`
}
