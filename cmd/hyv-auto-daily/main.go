package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/handlers"
	"github.com/ubergonmx/hyv-auto-daily/internal/logger"
	"github.com/ubergonmx/hyv-auto-daily/internal/metrics"
	"github.com/ubergonmx/hyv-auto-daily/internal/queue"
	"github.com/ubergonmx/hyv-auto-daily/internal/scheduler"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

const shutdownGrace = 30 * time.Second

func main() {
	if _, err := config.LoadLocalDotEnv(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Setup(cfg.Log)

	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	ctx := context.Background()
	m := metrics.New()

	runner, err := services.NewRunner(cfg, m, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create runner")
	}

	dispatcher, err := queue.New(ctx, cfg, runner)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create dispatcher")
	}

	register(ctx, cfg, runner, dispatcher, m)

	var timer *scheduler.Scheduler
	if cfg.DispatchMode == config.DispatchBackground && cfg.CronEnabled() {
		timer, err = scheduler.New(cfg.CheckInCron, cfg.CheckInTimezone, dispatcher)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create check-in timer")
		}
		timer.Start()
	}

	go shutdownOnSignal(timer, dispatcher, runner)

	log.Info().Str("port", cfg.Port).Str("dispatch", cfg.DispatchMode).Str("notifier", cfg.Notifier).Msg("Starting function server")
	if err := funcframework.Start(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start function")
	}
}

func register(ctx context.Context, cfg *config.Config, runner *services.Runner, dispatcher queue.Dispatcher, m *metrics.Metrics) {
	trigger := func(w http.ResponseWriter, r *http.Request) {
		handlers.TriggerHandler(w, r, dispatcher, cfg.TriggerBanner, cfg.RunMarker)
	}
	run := func(w http.ResponseWriter, r *http.Request) {
		handlers.RunHandler(w, r, runner)
	}
	scheduled := func(ctx context.Context, e event.Event) error {
		return handlers.ScheduledHandler(ctx, e, dispatcher)
	}
	metricsHandler := m.Handler()

	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/", trigger); err != nil {
		log.Fatal().Err(err).Msg("Failed to register trigger")
	}
	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/run", run); err != nil {
		log.Fatal().Err(err).Msg("Failed to register run target")
	}
	if err := funcframework.RegisterCloudEventFunctionContext(ctx, "/scheduled", scheduled); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled trigger")
	}
	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/metrics", metricsHandler.ServeHTTP); err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}
}

// shutdownOnSignal stops the timer and waits for in-flight runs before exiting.
// funcframework.Start offers no shutdown hook of its own.
func shutdownOnSignal(timer *scheduler.Scheduler, dispatcher queue.Dispatcher, runner *services.Runner) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info().Str("signal", s.String()).Msg("Shutting down")

	if timer != nil {
		<-timer.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if bg, ok := dispatcher.(*queue.Background); ok {
		if err := bg.Drain(ctx); err != nil {
			log.Warn().Err(err).Msg("In-flight runs did not finish before shutdown")
		}
	} else if err := dispatcher.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close dispatcher")
	}
	if err := runner.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close notifier")
	}
	os.Exit(0)
}
