package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ubergonmx/hyv-auto-daily/internal/checkin"
	"github.com/ubergonmx/hyv-auto-daily/internal/games"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/notification"
	"github.com/ubergonmx/hyv-auto-daily/internal/queue"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

const testBanner = "Personal auto daily check-in every 12 AM"

type mockDispatcher struct {
	mu   sync.Mutex
	reqs []models.RunRequest
	err  error
}

func (m *mockDispatcher) Dispatch(_ context.Context, req models.RunRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqs = append(m.reqs, req)
	return m.err
}

func (m *mockDispatcher) Close() error { return nil }

func TestTriggerHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantDispatch bool
	}{
		{name: "plain root", target: "/", wantDispatch: false},
		{name: "unrelated path", target: "/status", wantDispatch: false},
		{name: "marker in path", target: "/now", wantDispatch: true},
		{name: "marker in query", target: "/?run=now", wantDispatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &mockDispatcher{}
			rec := httptest.NewRecorder()

			TriggerHandler(rec, httptest.NewRequest(http.MethodGet, tt.target, nil), dispatcher, testBanner, "now")

			if rec.Code != http.StatusOK {
				t.Errorf("Expected 200, got %d", rec.Code)
			}
			if rec.Body.String() != testBanner {
				t.Errorf("Expected banner, got %q", rec.Body.String())
			}
			if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
				t.Errorf("Expected text/plain, got %q", rec.Header().Get("Content-Type"))
			}

			if got := len(dispatcher.reqs) == 1; got != tt.wantDispatch {
				t.Fatalf("Expected dispatch=%v, got %d dispatches", tt.wantDispatch, len(dispatcher.reqs))
			}
			if tt.wantDispatch {
				req := dispatcher.reqs[0]
				if req.Silent {
					t.Error("Expected non-silent run")
				}
				if req.Trigger != models.TriggerHTTP {
					t.Errorf("Expected http trigger, got %q", req.Trigger)
				}
				if req.RunID == "" {
					t.Error("Expected run ID")
				}
			}
		})
	}
}

func TestTriggerHandler_EmptyMarkerNeverDispatches(t *testing.T) {
	dispatcher := &mockDispatcher{}
	TriggerHandler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/now", nil), dispatcher, testBanner, "")

	if len(dispatcher.reqs) != 0 {
		t.Errorf("Expected no dispatch, got %d", len(dispatcher.reqs))
	}
}

func TestTriggerHandler_DispatchFailureStillOK(t *testing.T) {
	dispatcher := &mockDispatcher{err: errors.New("redis down")}
	rec := httptest.NewRecorder()

	TriggerHandler(rec, httptest.NewRequest(http.MethodGet, "/now", nil), dispatcher, testBanner, "now")

	if rec.Code != http.StatusOK || rec.Body.String() != testBanner {
		t.Errorf("Expected 200 with banner, got %d %q", rec.Code, rec.Body.String())
	}
}

// upstream fakes both HoYoLAB sign endpoints and the Discord webhook.
type upstream struct {
	mu        sync.Mutex
	signCalls int
	delivered []notification.WebhookPayload
}

func (u *upstream) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/event/", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.signCalls++
		u.mu.Unlock()
		io.WriteString(w, `{"retcode":0,"message":"OK"}`)
	})
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		var p notification.WebhookPayload
		json.NewDecoder(r.Body).Decode(&p)
		u.mu.Lock()
		u.delivered = append(u.delivered, p)
		u.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func (u *upstream) snapshot() (int, []notification.WebhookPayload) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.signCalls, append([]notification.WebhookPayload(nil), u.delivered...)
}

func newRunner(t *testing.T, server *httptest.Server) *services.Runner {
	t.Helper()
	list, err := games.WithBaseURL(games.Default(), server.URL)
	if err != nil {
		t.Fatalf("Failed to rebase registry: %v", err)
	}
	return &services.Runner{
		Games:    list,
		Invoker:  checkin.NewInvoker(server.Client()),
		Notifier: notification.NewService(notification.NewWebhookNotifier(server.Client()), server.URL+"/webhook"),
		Cookie:   "ltoken=abc",
		UserID:   "1234",
	}
}

func TestTriggerHandler_WithoutMarkerMakesNoUpstreamCalls(t *testing.T) {
	up := &upstream{}
	server := up.server(t)
	bg := queue.NewBackground(newRunner(t, server))

	rec := httptest.NewRecorder()
	TriggerHandler(rec, httptest.NewRequest(http.MethodGet, "/", nil), bg, testBanner, "now")
	bg.Close()

	calls, delivered := up.snapshot()
	if calls != 0 || len(delivered) != 0 {
		t.Errorf("Expected no upstream traffic, got %d sign calls and %d webhooks", calls, len(delivered))
	}
	if rec.Body.String() != testBanner {
		t.Errorf("Expected banner, got %q", rec.Body.String())
	}
}

func TestTriggerHandler_WithMarkerRunsInBackground(t *testing.T) {
	up := &upstream{}
	server := up.server(t)
	bg := queue.NewBackground(newRunner(t, server))

	rec := httptest.NewRecorder()
	TriggerHandler(rec, httptest.NewRequest(http.MethodGet, "/now", nil), bg, testBanner, "now")

	if rec.Code != http.StatusOK || rec.Body.String() != testBanner {
		t.Fatalf("Expected immediate 200 banner, got %d %q", rec.Code, rec.Body.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bg.Drain(ctx); err != nil {
		t.Fatalf("Background run did not finish: %v", err)
	}

	calls, delivered := up.snapshot()
	if calls != 2 {
		t.Errorf("Expected 2 sign calls, got %d", calls)
	}
	if len(delivered) != 2 {
		t.Fatalf("Expected 2 webhooks, got %d", len(delivered))
	}
	for _, p := range delivered {
		if !strings.HasPrefix(p.Content, "<@1234>\n") {
			t.Errorf("Expected mention prefix, got %q", p.Content)
		}
		if strings.HasPrefix(p.Content, checkin.SilentPrefix) {
			t.Errorf("Expected non-silent content, got %q", p.Content)
		}
	}
}
