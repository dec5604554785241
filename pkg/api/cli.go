package api

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/mvgboard/mvgboard/pkg/archiver"
	"github.com/mvgboard/mvgboard/pkg/boards"
	"github.com/mvgboard/mvgboard/pkg/database"
	"github.com/mvgboard/mvgboard/pkg/dispatcher"
	"github.com/mvgboard/mvgboard/pkg/mvv"
	"github.com/mvgboard/mvgboard/pkg/util"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "boards",
						Value: "data/boards/",
						Usage: "directory containing board definition files",
					},
				},
				Action: func(c *cli.Context) error {
					boardSet, err := boards.LoadDirectory(c.String("boards"))
					if err != nil {
						return err
					}
					log.Info().Int("boards", len(boardSet.All())).Msg("Loaded board definitions")

					client := mvv.NewClient()
					client.DeparturesEndpoint = util.GetEnvironmentVariable("MVGBOARD_DEPARTURES_ENDPOINT", client.DeparturesEndpoint)
					client.TripsEndpoint = util.GetEnvironmentVariable("MVGBOARD_TRIPS_ENDPOINT", client.TripsEndpoint)

					d := dispatcher.NewDispatcher(client)
					d.SetupResultStore()
					if database.Connected() {
						d.SetRecorder(archiver.Recorder{})
					}
					d.Start()

					return SetupServer(c.String("listen"), d, boardSet)
				},
			},
		},
	}
}
