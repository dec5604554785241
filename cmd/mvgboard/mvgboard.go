package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mvgboard/mvgboard/pkg/api"
	"github.com/mvgboard/mvgboard/pkg/archiver"
	"github.com/mvgboard/mvgboard/pkg/boards"
	"github.com/mvgboard/mvgboard/pkg/database"
	"github.com/mvgboard/mvgboard/pkg/redis_client"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("MVGBOARD_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("MVGBOARD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	if err := redis_client.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	app := &cli.App{
		Name:        "mvgboard",
		Description: "Live MVG departure boards - fetches, normalizes and enriches public transit departures",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			boards.RegisterCLI(),
			archiver.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
