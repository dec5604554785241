package archiver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/urfave/cli/v2"

	"github.com/mvgboard/mvgboard/pkg/database"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Manages the archived board results",
		Subcommands: []*cli.Command{
			{
				Name:  "prune",
				Usage: "delete archived results older than the given age",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "max-age",
						Value: "P7D",
						Usage: "ISO8601 duration to keep results for",
					},
				},
				Action: func(c *cli.Context) error {
					if !database.Connected() {
						return errors.New("archive pruning requires a mongo connection")
					}

					maxAge, err := iso8601.ParseISO8601(c.String("max-age"))
					if err != nil {
						return err
					}

					now := time.Now()
					cutoff := now.Add(-maxAge.Shift(now).Sub(now))

					deleted, err := Prune(context.Background(), cutoff)
					if err != nil {
						return err
					}

					log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned archived results")

					return nil
				},
			},
		},
	}
}
