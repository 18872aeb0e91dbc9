package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

// RunDispatcher is the interface used by the scheduler to hand off runs.
// Concrete implementations live in the queue package.
type RunDispatcher interface {
	Dispatch(ctx context.Context, req models.RunRequest) error
}

// Scheduler fires a silent check-in run on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	entry      cron.EntryID
	spec       string
	location   *time.Location
	dispatcher RunDispatcher
}

// New parses spec (standard five-field cron) in the named timezone.
func New(spec, timezone string, dispatcher RunDispatcher) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	s := &Scheduler{
		spec:       spec,
		location:   loc,
		dispatcher: dispatcher,
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger{}))

	s.entry, err = s.cron.AddFunc(spec, s.fire)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Str("cron", s.spec).Str("timezone", s.location.String()).Time("next", s.Next()).Msg("Check-in timer started")
}

// Stop halts the timer. The returned context is done once a running job
// has handed off its run.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next reports the next fire time, computed from now when the timer is
// not running yet.
func (s *Scheduler) Next() time.Time {
	if next := s.cron.Entry(s.entry).Next; !next.IsZero() {
		return next
	}
	return s.cron.Entry(s.entry).Schedule.Next(time.Now().In(s.location))
}

func (s *Scheduler) fire() {
	req := services.NewRunRequest(models.TriggerScheduled, true)
	log.Info().Str("run_id", req.RunID).Str("cron", s.spec).Msg("Timer fired")

	if err := s.dispatcher.Dispatch(context.Background(), req); err != nil {
		log.Error().Err(err).Str("run_id", req.RunID).Msg("Failed to dispatch scheduled run")
	}
}

// cronLogger routes robfig/cron's logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
