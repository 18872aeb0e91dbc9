// Package cli holds the flag parsing shared by the command-line tools.
package cli

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"github.com/ubergonmx/hyv-auto-daily/internal/logger"
)

// Common options embedded by every tool.
type Common struct {
	EnvFile string        `long:"env-file" description:"Dotenv file loaded before reading the environment" default:".env"`
	Logger  logger.Config `group:"Logger Options" namespace:"log" env-namespace:"LOG"`
}

// Parse reads flags into opts. It terminates the process on --help or on a
// parse error, the way go-flags reports them.
func Parse(opts any) []string {
	parser := flags.NewParser(opts, flags.Default)
	parser.NamespaceDelimiter = "-"

	args, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	return args
}

// Load applies the common options: dotenv, environment config and logger.
func Load(c Common) *config.Config {
	if err := config.LoadDotEnv(c.EnvFile); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", c.EnvFile).Msg("Failed to load dotenv file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Setup(c.Logger)
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}
	return cfg
}
