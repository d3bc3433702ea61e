package replay

import (
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/ftdf"
	"github.com/tripscope/tripscope/pkg/player"
	"github.com/tripscope/tripscope/pkg/source"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Replay recorded trip datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Replay a dataset to the log until exhaustion",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "speed",
						Value: 1,
						Usage: "Playback speed factor",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := source.GetDataset(c.String("dataset"))
					if err != nil {
						return err
					}

					session, err := NewSession(dataset, player.Config{
						SpeedFactor: c.Float64("speed"),
					})
					if err != nil {
						return err
					}

					session.Player.Subscribe(player.SubscriberFuncs{
						Event: logEvent,
					})

					session.Player.Play()

					// The player auto-pauses once the log is exhausted.
					for session.Player.Running() {
						time.Sleep(player.DefaultTickInterval)
					}

					log.Info().
						Time("simulated_time", session.Player.CurrentTime()).
						Int("events", session.Tracker.Snapshot().TotalEvents).
						Msg("Replay finished")

					return nil
				},
			},
			{
				Name:  "inspect",
				Usage: "Step through a whole dataset instantly & dump the fleet summary",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "ID of the dataset",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := source.GetDataset(c.String("dataset"))
					if err != nil {
						return err
					}

					session, err := NewSession(dataset, player.Config{})
					if err != nil {
						return err
					}

					for session.Player.AdvanceToNextEvent() {
					}

					pretty.Println(session.Tracker.Snapshot())

					return nil
				},
			},
		},
	}
}

func logEvent(event ftdf.TripEvent) {
	log.Info().
		Str("kind", string(event.Kind)).
		Time("timestamp", event.Timestamp).
		Str("trip", event.TripRef).
		Str("vehicle", event.VehicleRef).
		Msg("Event")
}
