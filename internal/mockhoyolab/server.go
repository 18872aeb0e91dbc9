// Package mockhoyolab is a local stand-in for the HoYoLAB sign endpoints and
// a Discord webhook, used to exercise the service without real accounts.
package mockhoyolab

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/notification"
)

// Responses maps a game key to the message the sign endpoint answers with.
// A missing key answers with an empty message.
type Responses map[string]string

type signResponse struct {
	RetCode int    `json:"retcode"`
	Message string `json:"message"`
}

// webhookMessage is the subset of a Discord message returned for ?wait=true.
type webhookMessage struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Content   string `json:"content"`
	Flags     int    `json:"flags"`
}

// Server records sign calls and webhook deliveries.
type Server struct {
	responses Responses

	mu        sync.Mutex
	signs     []string
	delivered []notification.WebhookPayload
}

func New(responses Responses) *Server {
	return &Server{responses: responses}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/event/sol/sign", s.sign("genshin")).Methods(http.MethodPost)
	r.HandleFunc("/event/luna/os/sign", s.sign("hsr")).Methods(http.MethodPost)
	r.HandleFunc("/api/webhooks/{id}/{token}", s.webhook).Methods(http.MethodPost)
	r.HandleFunc("/api/v{version:[0-9]+}/webhooks/{id}/{token}", s.webhook).Methods(http.MethodPost)
	r.HandleFunc("/deliveries", s.listDeliveries).Methods(http.MethodGet)
	return r
}

func (s *Server) sign(game string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.signs = append(s.signs, game)
		s.mu.Unlock()

		resp := signResponse{Message: s.responses[game]}
		if r.Header.Get("Cookie") == "" {
			resp = signResponse{RetCode: -100, Message: "Not logged in"}
		}

		log.Info().Str("game", game).Str("message", resp.Message).Msg("Sign request")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var payload notification.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Invalid webhook payload", http.StatusBadRequest)
		return
	}
	var flags struct {
		Flags int `json:"flags"`
	}
	json.Unmarshal(body, &flags)

	s.mu.Lock()
	s.delivered = append(s.delivered, payload)
	n := len(s.delivered)
	s.mu.Unlock()

	log.Info().Str("webhook", mux.Vars(r)["id"]).Str("username", payload.Username).Str("content", payload.Content).Msg("Webhook delivered")

	// discordgo executes with wait=true and decodes the created message.
	if r.URL.Query().Get("wait") != "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(webhookMessage{
		ID:        strconv.Itoa(n),
		ChannelID: mux.Vars(r)["id"],
		Content:   payload.Content,
		Flags:     flags.Flags,
	})
}

func (s *Server) listDeliveries(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Deliveries())
}

func (s *Server) Deliveries() []notification.WebhookPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification.WebhookPayload{}, s.delivered...)
}

func (s *Server) SignCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.signs...)
}
