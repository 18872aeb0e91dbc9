package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/internal/cli"
	"github.com/ubergonmx/hyv-auto-daily/internal/logger"
	"github.com/ubergonmx/hyv-auto-daily/internal/mockhoyolab"
)

type options struct {
	Address        string        `short:"l" long:"address" description:"Listen address" default:":9000"`
	GenshinMessage string        `long:"genshin-message" description:"Message returned by the Genshin sign endpoint" default:"OK"`
	HSRMessage     string        `long:"hsr-message" description:"Message returned by the Star Rail sign endpoint" default:"OK"`
	Logger         logger.Config `group:"Logger Options" namespace:"log" env-namespace:"LOG"`
}

func main() {
	var opts options
	cli.Parse(&opts)
	logger.Setup(opts.Logger)

	mock := mockhoyolab.New(mockhoyolab.Responses{
		"genshin": opts.GenshinMessage,
		"hsr":     opts.HSRMessage,
	})

	srv := &http.Server{
		Addr:              opts.Address,
		Handler:           mock.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("address", opts.Address).Msg("Mock HoYoLAB listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Mock server stopped")
	}
}
