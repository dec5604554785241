package boards

import (
	"time"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"

	"github.com/mvgboard/mvgboard/pkg/departures"
	"github.com/mvgboard/mvgboard/pkg/dispatcher"
	"github.com/mvgboard/mvgboard/pkg/mvv"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Inspect and debug departure boards",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list the configured boards",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "boards",
						Value: "data/boards/",
						Usage: "directory containing board definition files",
					},
				},
				Action: func(c *cli.Context) error {
					boardSet, err := LoadDirectory(c.String("boards"))
					if err != nil {
						return err
					}

					for _, board := range boardSet.All() {
						pretty.Println(board)
					}

					return nil
				},
			},
			{
				Name:  "fetch",
				Usage: "run a single fetch cycle and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "stop",
						Usage:    "origin stop identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "destination",
						Usage: "destination stop identifier for arrival estimation",
					},
					&cli.StringSliceFlag{
						Name:  "lines",
						Usage: "restrict output to these line labels",
					},
					&cli.StringSliceFlag{
						Name:  "destinations",
						Usage: "restrict output to destinations containing these keywords",
					},
				},
				Action: func(c *cli.Context) error {
					board := &Board{
						Name:            "cli",
						Stop:            c.String("stop"),
						DestinationStop: c.String("destination"),
						Lines:           c.StringSlice("lines"),
						Destinations:    c.StringSlice("destinations"),
					}

					request, err := board.RequestAt(time.Now())
					if err != nil {
						return err
					}

					d := dispatcher.NewDispatcher(mvv.NewClient())
					d.Start()
					defer d.Stop()

					result := <-d.Submit(request)

					pretty.Println(result)
					if result.Failure != departures.FailureReasonNone {
						pretty.Println("fetch degraded:", string(result.Failure))
					}

					return nil
				},
			},
		},
	}
}
