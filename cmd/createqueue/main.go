package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/cli"
	"github.com/ubergonmx/hyv-auto-daily/internal/tasks"
)

type options struct {
	cli.Common
}

func main() {
	var opts options
	cli.Parse(&opts)
	cfg := cli.Load(opts.Common)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := tasks.NewCloudTasksClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Cloud Tasks client")
	}
	defer client.Close()

	created, err := tasks.EnsureQueue(ctx, client, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create queue")
	}
	if created {
		log.Info().Str("queue", tasks.QueuePath(cfg)).Msg("Queue created")
	} else {
		log.Info().Str("queue", tasks.QueuePath(cfg)).Msg("Queue already exists, skipping creation")
	}
}
