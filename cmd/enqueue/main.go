package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/cli"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/queue"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

type options struct {
	Now  bool   `long:"now" description:"Enqueue a non-silent run that mentions the user"`
	Mode string `long:"mode" description:"Override DISPATCH_MODE" choice:"redis" choice:"cloudtasks" choice:"background"`
	cli.Common
}

func main() {
	var opts options
	cli.Parse(&opts)
	cfg := cli.Load(opts.Common)

	if opts.Mode != "" {
		cfg.DispatchMode = opts.Mode
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Only the background dispatcher runs check-ins in this process.
	var runner *services.Runner
	if cfg.DispatchMode == config.DispatchBackground {
		var err error
		runner, err = services.NewRunner(cfg, nil, true)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create runner")
		}
		defer runner.Close()
	}

	dispatcher, err := queue.New(ctx, cfg, runner)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create dispatcher")
	}

	req := services.NewRunRequest(models.TriggerCLI, !opts.Now)
	if err := dispatcher.Dispatch(ctx, req); err != nil {
		log.Fatal().Err(err).Str("run_id", req.RunID).Msg("Failed to enqueue run")
	}

	log.Info().
		Str("run_id", req.RunID).
		Str("mode", cfg.DispatchMode).
		Bool("silent", req.Silent).
		Msg("Run enqueued successfully")

	if err := dispatcher.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close dispatcher")
	}
}
