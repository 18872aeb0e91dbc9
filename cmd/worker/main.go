package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/cli"
	"github.com/ubergonmx/hyv-auto-daily/internal/metrics"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

type options struct {
	Concurrency    int    `long:"concurrency" description:"Number of check-in runs processed at once" default:"1"`
	MetricsAddress string `long:"metrics-address" description:"Listen address for /metrics; empty disables it" default:":9090"`
	NoSchedule     bool   `long:"no-schedule" description:"Do not register the daily periodic task"`
	cli.Common
}

func main() {
	var opts options
	cli.Parse(&opts)
	cfg := cli.Load(opts.Common)

	m := metrics.New()
	runner, err := services.NewRunner(cfg, m, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create runner")
	}
	defer runner.Close()

	redisOpt := tasks.RedisClientOpt(cfg)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: opts.Concurrency,
		Queues:      map[string]int{tasks.QueueName: 1},
		Logger:      asynqLogger{},
	})
	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeCheckInRun, tasks.NewCheckInRunHandler(runner))

	var scheduler *asynq.Scheduler
	if !opts.NoSchedule && cfg.CronEnabled() {
		loc, err := time.LoadLocation(cfg.CheckInTimezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.CheckInTimezone).Msg("Invalid timezone")
		}
		scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: loc, Logger: asynqLogger{}})
		if _, err := tasks.RegisterDailyCheckIn(scheduler, cfg.CheckInCron); err != nil {
			log.Fatal().Err(err).Msg("Failed to register daily check-in")
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	if opts.MetricsAddress != "" {
		go func() {
			log.Info().Str("address", opts.MetricsAddress).Msg("Serving metrics")
			if err := http.ListenAndServe(opts.MetricsAddress, m.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to start worker")
	}
	log.Info().Str("redis", cfg.RedisAddress).Int("concurrency", opts.Concurrency).Msg("Worker started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down worker")
	if scheduler != nil {
		scheduler.Shutdown()
	}
	srv.Shutdown()
}

// asynqLogger routes asynq's logging through zerolog.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { log.Debug().Msg(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...interface{})  { log.Info().Msg(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...interface{})  { log.Warn().Msg(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...interface{}) { log.Error().Msg(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...interface{}) { log.Fatal().Msg(fmt.Sprint(args...)) }
