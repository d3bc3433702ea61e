package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/tripscope/tripscope/pkg/replay"
)

func VehiclesRouter(router fiber.Router, session *replay.Session) {
	router.Get("/", listVehicles(session))
}

func listVehicles(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups := []string{"basic"}
		if c.Query("detailed") == "true" {
			groups = append(groups, "detailed")
		}

		fleetSummary := session.Tracker.Snapshot()

		fleetReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: groups,
		}, fleetSummary)
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal fleet summary")
			return c.SendStatus(fiber.StatusInternalServerError)
		}

		return c.JSON(fleetReduced)
	}
}
