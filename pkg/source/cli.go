package source

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "datasets",
		Usage: "Recorded trip datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					for _, dataset := range GetRegisteredDataSets() {
						log.Info().
							Str("identifier", dataset.Identifier).
							Str("format", string(dataset.Format)).
							Str("provider", dataset.Provider.Name).
							Str("source", dataset.Source).
							Msg("Registered dataset")
					}

					return nil
				},
			},
		},
	}
}
