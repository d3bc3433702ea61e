package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/api"
	"github.com/tripscope/tripscope/pkg/replay"
	"github.com/tripscope/tripscope/pkg/source"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRIPSCOPE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRIPSCOPE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "tripscope",
		Description: "Replays recorded fleet-trip telemetry as if it were a live feed",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			replay.RegisterCLI(),
			source.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
