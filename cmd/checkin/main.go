package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/cli"
	"github.com/ubergonmx/hyv-auto-daily/internal/games"
	"github.com/ubergonmx/hyv-auto-daily/internal/models"
	"github.com/ubergonmx/hyv-auto-daily/internal/services"
)

type options struct {
	Now     bool          `long:"now" description:"Mention the user instead of sending a silent notification"`
	Games   []string      `short:"g" long:"game" description:"Only check in to this game (genshin, hsr); repeatable"`
	DryRun  bool          `long:"dry-run" description:"Log notifications instead of sending them to Discord"`
	Timeout time.Duration `long:"timeout" description:"Upper bound for the whole run" default:"2m"`
	cli.Common
}

func main() {
	os.Exit(run())
}

// run returns the exit status once deferred cleanup has had its turn.
func run() int {
	var opts options
	cli.Parse(&opts)
	cfg := cli.Load(opts.Common)

	runner, err := services.NewRunner(cfg, nil, !opts.DryRun)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create runner")
		return 1
	}
	defer runner.Close()

	runner.Games = games.Filter(runner.Games, opts.Games...)
	if len(runner.Games) == 0 {
		log.Error().Strs("games", opts.Games).Msg("No matching games")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	summary := runner.Run(ctx, services.NewRunRequest(models.TriggerCLI, !opts.Now))

	out, _ := json.MarshalIndent(summary, "", "  ")
	os.Stdout.Write(append(out, '\n'))

	return exitCode(summary)
}

// exitCode is 1 when any game failed or went unnotified.
func exitCode(summary models.RunSummary) int {
	for _, g := range summary.Games {
		if g.Outcome == models.OutcomeFailed.String() || !g.Notified {
			return 1
		}
	}
	return 0
}
