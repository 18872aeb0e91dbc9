package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/queue"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

// TriggerHandler always answers 200 with the static banner. When the request
// URI contains marker, a non-silent run is dispatched after the response has
// been written. Dispatch failures are logged and never change the response.
func TriggerHandler(w http.ResponseWriter, r *http.Request, dispatcher queue.Dispatcher, banner, marker string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, banner)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	if !shouldRunNow(r, marker) {
		return
	}

	req := services.NewRunRequest(models.TriggerHTTP, false)
	log.Info().Str("run_id", req.RunID).Str("uri", r.URL.RequestURI()).Msg("Immediate check-in requested")

	if err := dispatcher.Dispatch(r.Context(), req); err != nil {
		log.Error().Err(err).Str("run_id", req.RunID).Msg("Failed to dispatch check-in run")
	}
}

func shouldRunNow(r *http.Request, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(r.URL.RequestURI(), marker)
}
