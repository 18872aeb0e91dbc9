package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ubergonmx/hyv-auto-daily/internal/models"
)

type recordingRunner struct {
	got models.RunRequest
}

func (r *recordingRunner) Run(_ context.Context, req models.RunRequest) models.RunSummary {
	r.got = req
	return models.RunSummary{
		RunID:   req.RunID,
		Trigger: req.Trigger,
		Silent:  req.Silent,
		Games:   []models.GameOutcome{{Game: "Genshin Impact", Outcome: "succeeded", Notified: true}},
	}
}

func TestRunHandler(t *testing.T) {
	runner := &recordingRunner{}
	rec := httptest.NewRecorder()
	body := `{"run_id":"run-1","silent":true,"trigger":"scheduled"}`

	RunHandler(rec, httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(body)), runner)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if runner.got.RunID != "run-1" || !runner.got.Silent || runner.got.Trigger != models.TriggerScheduled {
		t.Errorf("Unexpected run request %+v", runner.got)
	}

	var summary models.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Response is not a run summary: %v", err)
	}
	if summary.RunID != "run-1" || len(summary.Games) != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}
}

func TestRunHandler_Defaults(t *testing.T) {
	runner := &recordingRunner{}
	RunHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{}`)), runner)

	if runner.got.RunID == "" {
		t.Error("Expected generated run ID")
	}
	if runner.got.Trigger != models.TriggerHTTP {
		t.Errorf("Expected http trigger, got %q", runner.got.Trigger)
	}
	if runner.got.RequestedAt.IsZero() {
		t.Error("Expected RequestedAt to be set")
	}
}

func TestRunHandler_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{name: "invalid json", method: http.MethodPost, body: "not-json", want: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, body: "", want: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			rec := httptest.NewRecorder()

			RunHandler(rec, httptest.NewRequest(tt.method, "/run", strings.NewReader(tt.body)), runner)

			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
			if runner.got.RunID != "" {
				t.Error("Expected no run")
			}
		})
	}
}
