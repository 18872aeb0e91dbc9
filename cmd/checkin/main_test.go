package main

import (
	"testing"

	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		games    []models.GameOutcome
		expected int
	}{
		{
			name:     "NoGames",
			expected: 0,
		},
		{
			name: "AllNotified",
			games: []models.GameOutcome{
				{Game: "genshin", Outcome: models.OutcomeSucceeded.String(), Notified: true},
				{Game: "hsr", Outcome: models.OutcomeInformational.String(), Notified: true},
			},
			expected: 0,
		},
		{
			name: "FailedCheckIn",
			games: []models.GameOutcome{
				{Game: "genshin", Outcome: models.OutcomeSucceeded.String(), Notified: true},
				{Game: "hsr", Outcome: models.OutcomeFailed.String(), Notified: true},
			},
			expected: 1,
		},
		{
			name: "NotificationFailed",
			games: []models.GameOutcome{
				{Game: "genshin", Outcome: models.OutcomeSucceeded.String(), Notified: false, Error: "webhook returned 500"},
			},
			expected: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := exitCode(models.RunSummary{Games: tc.games})
			if got != tc.expected {
				t.Errorf("expected exit code %d, got %d", tc.expected, got)
			}
		})
	}
}
