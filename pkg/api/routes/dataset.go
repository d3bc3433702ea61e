package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tripscope/tripscope/pkg/replay"
)

func DatasetRouter(router fiber.Router, session *replay.Session) {
	router.Get("/", getDataset(session))
}

func getDataset(session *replay.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response := fiber.Map{
			"identifier": session.Dataset.Identifier,
			"format":     session.Dataset.Format,
			"provider":   session.Dataset.Provider,
			"events":     session.EventLog.Len(),
		}

		if startTime, ok := session.EventLog.StartTime(); ok {
			response["start_time"] = startTime
		}
		if endTime, ok := session.EventLog.EndTime(); ok {
			response["end_time"] = endTime
		}

		return c.JSON(response)
	}
}
