package api

import (
	"github.com/tripscope/tripscope/pkg/player"
	"github.com/tripscope/tripscope/pkg/replay"
	"github.com/tripscope/tripscope/pkg/source"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the replay control web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server over a loaded dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "ID of the dataset to load",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "speed",
						Value: 1,
						Usage: "initial playback speed factor",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := source.GetDataset(c.String("dataset"))
					if err != nil {
						return err
					}

					session, err := replay.NewSession(dataset, player.Config{
						SpeedFactor: c.Float64("speed"),
					})
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), session)
				},
			},
		},
	}
}
